package handlers

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/RahulRajeev-0/employee-management-system/internal/common"
	"github.com/RahulRajeev-0/employee-management-system/internal/models"
	"github.com/RahulRajeev-0/employee-management-system/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const pictureURLExpiry = 24 * time.Hour

// UserHandlers handles the authenticated profile endpoints
type UserHandlers struct {
	accountSvc services.AccountService
	mediaSvc   services.MediaService
	logger     *log.Logger
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(accountSvc services.AccountService, mediaSvc services.MediaService, logger *log.Logger) *UserHandlers {
	return &UserHandlers{
		accountSvc: accountSvc,
		mediaSvc:   mediaSvc,
		logger:     logger,
	}
}

// UserDetailsResponse is the serialized user minus the password hash.
type UserDetailsResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Username       *string   `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	IsActive       bool      `json:"is_active"`
	ProfilePicture *string   `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GetDetails handles getting the current user's profile
func (h *UserHandlers) GetDetails(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, profile, err := h.accountSvc.GetProfile(ctx, userID)
	if err != nil {
		h.logger.Printf("Failed to fetch profile for user %s: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "An error occurred while fetching the profile",
		})
	}

	return c.JSON(http.StatusOK, h.detailsResponse(ctx, user, profile))
}

// UpdateDetailsRequest represents the partial profile update payload
type UpdateDetailsRequest struct {
	FirstName *string `json:"first_name" form:"first_name"`
	LastName  *string `json:"last_name" form:"last_name"`
	Username  *string `json:"username" form:"username"`
	Email     *string `json:"email" form:"email"`
}

// UpdateDetails handles the partial profile update. A profile-picture file,
// when attached, is uploaded and saved before the account-field checks run.
func (h *UserHandlers) UpdateDetails(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req UpdateDetailsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	input := services.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
	}

	if file, err := c.FormFile("profile_pic"); err == nil {
		objectName, err := h.uploadPicture(c, file)
		if err != nil {
			h.logger.Printf("Failed to upload profile picture for user %s: %v", userID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "An error occurred while saving the profile picture",
			})
		}
		input.Picture = &objectName
	}

	user, profile, err := h.accountSvc.UpdateProfile(ctx, userID, input)
	if err != nil {
		if e, ok := common.AsError(err); ok && e.Kind == common.KindValidation {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": e.Message})
		}
		h.logger.Printf("Failed to update profile for user %s: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "An error occurred while updating the profile",
		})
	}

	return c.JSON(http.StatusOK, h.detailsResponse(ctx, user, profile))
}

// ChangePasswordRequest represents the password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles the password change. Previously issued tokens stay
// valid.
func (h *UserHandlers) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	if err := h.accountSvc.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		if e, ok := common.AsError(err); ok && e.Kind == common.KindValidation {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": e.Message})
		}
		h.logger.Printf("Failed to change password for user %s: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "An error occurred while changing the password",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (h *UserHandlers) uploadPicture(c echo.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectName := fmt.Sprintf("profile_pics/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if err := h.mediaSvc.Upload(c.Request().Context(), objectName, src, file.Size, contentType); err != nil {
		return "", err
	}
	return objectName, nil
}

func (h *UserHandlers) detailsResponse(ctx context.Context, user *models.User, profile *models.Profile) *UserDetailsResponse {
	resp := &UserDetailsResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if profile != nil {
		url, err := h.mediaSvc.PresignedURL(ctx, profile.Picture, pictureURLExpiry)
		if err != nil {
			h.logger.Printf("Failed to presign picture %s: %v", profile.Picture, err)
		} else {
			resp.ProfilePicture = &url
		}
	}
	return resp
}
