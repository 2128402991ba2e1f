package handler

import (
	"net/http"

	"storefront-service/internal/middleware"
	"storefront-service/pkg/config"
	"storefront-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LoginRequest defines the structure for admin login-check requests
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin returns a handler that lets a client probe the admin
// credential pair. It is a convenience for the admin UI only; every
// protected route still re-checks credentials via the Basic auth guard.
func AdminLogin(cfg *config.AdminConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		var req LoginRequest
		if err := c.Bind(&req); err != nil {
			log.Error("Invalid request data", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Invalid request data",
			})
		}
		if err := c.Validate(&req); err != nil {
			log.Warn("Login payload failed validation", zap.Error(err))
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error": "username and password are required",
			})
		}

		if !middleware.CredentialsMatch(cfg, req.Username, req.Password) {
			log.Warn("Admin login check failed", zap.String("username", req.Username))
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "Invalid credentials",
			})
		}

		log.Info("Admin login check succeeded")
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
		})
	}
}
