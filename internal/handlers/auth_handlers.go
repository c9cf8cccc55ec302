package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/RahulRajeev-0/employee-management-system/internal/common"
	"github.com/RahulRajeev-0/employee-management-system/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles signup, login and token endpoints
type AuthHandlers struct {
	accountSvc services.AccountService
	authSvc    services.AuthService
	logger     *log.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(accountSvc services.AccountService, authSvc services.AuthService, logger *log.Logger) *AuthHandlers {
	return &AuthHandlers{
		accountSvc: accountSvc,
		authSvc:    authSvc,
		logger:     logger,
	}
}

// Signup handles user registration
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.SignupInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"message": []string{"Invalid request format"},
		})
	}

	if err := h.accountSvc.Signup(ctx, req); err != nil {
		var validation *services.SignupValidation
		if errors.As(err, &validation) {
			return c.JSON(http.StatusBadRequest, map[string]any{"message": validation.Messages})
		}
		if e, ok := common.AsError(err); ok && e.Kind == common.KindConflict {
			return c.JSON(http.StatusConflict, map[string]string{"message": e.Message})
		}
		h.logger.Printf("Error in user registration: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "An error occurred during registration",
		})
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "User registration successful",
	})
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login with email and password. Credential failures are
// reported as 400 rather than 401 so the response carries no explicit
// auth-failure signal.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	result, err := h.accountSvc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if e, ok := common.AsError(err); ok && e.Kind == common.KindValidation {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": e.Message})
		}
		h.logger.Printf("Login error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "An error occurred during login",
		})
	}

	return c.JSON(http.StatusOK, result)
}

// TokenObtainPair issues a standard access/refresh pair for valid credentials.
func (h *AuthHandlers) TokenObtainPair(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "email and password are required"})
	}

	user, err := h.accountSvc.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if _, ok := common.AsError(err); ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"detail": "No active account found with the given credentials",
			})
		}
		h.logger.Printf("Token issuance error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "An error occurred"})
	}

	pair, err := h.authSvc.GenerateTokenPair(ctx, user)
	if err != nil {
		h.logger.Printf("Token issuance error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "An error occurred"})
	}

	return c.JSON(http.StatusOK, pair)
}

// TokenRefreshRequest represents the token refresh payload
type TokenRefreshRequest struct {
	Refresh string `json:"refresh"`
}

// TokenRefresh exchanges a valid refresh token for a new access token.
func (h *AuthHandlers) TokenRefresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req TokenRefreshRequest
	if err := c.Bind(&req); err != nil || req.Refresh == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "refresh token is required"})
	}

	access, err := h.authSvc.RefreshAccessToken(ctx, req.Refresh)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"detail": "Token is invalid or expired",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"access": access})
}
