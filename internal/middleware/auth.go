package middleware

import (
	"crypto/subtle"
	"net/http"

	"storefront-service/pkg/config"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"

	"github.com/labstack/echo/v4"
)

// AdminAuth returns a middleware that gates admin routes behind HTTP Basic
// credentials. The configured pair is compared with constant-time equality so
// response timing reveals nothing about the expected values. Every request
// must carry the credentials again; no session or token is issued.
func AdminAuth(cfg *config.AdminConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)
			prometheus.AuthAttemptsCounter.Inc()

			username, password, ok := c.Request().BasicAuth()
			if !ok {
				log.Warn("Missing or malformed Basic auth header")
				prometheus.AuthErrorsCounter.Inc()
				return unauthorized(c)
			}

			if !CredentialsMatch(cfg, username, password) {
				log.Warn("Invalid admin credentials")
				prometheus.AuthErrorsCounter.Inc()
				return unauthorized(c)
			}

			prometheus.AuthSuccessCounter.Inc()
			c.Set("admin_user", username)
			return next(c)
		}
	}
}

// CredentialsMatch reports whether the supplied pair equals the configured
// admin credential, using constant-time comparison for both fields.
func CredentialsMatch(cfg *config.AdminConfig, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) == 1
	return userOK && passOK
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="storefront admin"`)
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"error": "Invalid credentials",
	})
}
