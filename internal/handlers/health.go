package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves liveness endpoints
type HealthHandler struct {
	service string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service}
}

// RegisterHealthRoutes registers the health routes
func (h *HealthHandler) RegisterHealthRoutes(e *echo.Echo) {
	e.GET("/health", h.HealthCheck)
	e.GET("/ping", h.Ping)
	e.GET("/", h.Root)
}

// HealthCheck reports service status
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   h.service,
	})
}

// Ping answers plain text
func (h *HealthHandler) Ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong")
}

// Root answers plain text
func (h *HealthHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, h.service+" is running")
}
