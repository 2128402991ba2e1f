package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root reports the service banner for the API prefix
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Storefront API",
		"status":  "working",
	})
}

// Health is the liveness probe
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
