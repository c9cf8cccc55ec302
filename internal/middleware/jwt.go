package middleware

import (
	"net/http"

	"github.com/RahulRajeev-0/employee-management-system/internal/common"
	"github.com/RahulRajeev-0/employee-management-system/internal/services"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWT returns the bearer-token middleware for protected routes. On success
// the authenticated user ID is injected into the request context.
func JWT(authSvc services.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := authSvc.ValidateAccessToken(auth)
			if err != nil {
				return nil, err
			}
			userID, err := claims.UserID()
			if err != nil {
				return nil, err
			}
			c.SetRequest(c.Request().WithContext(common.WithUserID(c.Request().Context(), userID)))
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}
