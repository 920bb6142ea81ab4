package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse is returned by every service's health endpoint
type HealthResponse struct {
	Status    string `json:"status"`
	Component string `json:"component"`
}

// HealthHandler reports liveness without touching any dependency
type HealthHandler struct {
	component string
}

// NewHealthHandler creates a health handler for the named component
func NewHealthHandler(component string) *HealthHandler {
	return &HealthHandler{component: component}
}

// RegisterRoutes adds GET /health
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// Health returns {status, component}
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Component: h.component})
}
