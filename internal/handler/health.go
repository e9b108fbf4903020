package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It returns
// a plain text "ok" message with an HTTP 200 status code.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// HealthStatus reports service health as JSON.
func HealthStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
}

// Root greets clients hitting the bare host.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Welcome to the Home Inventory System API"})
}
