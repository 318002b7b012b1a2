package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lifeline/internal/delivery/http/response"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct{}

// NewHealthHandler is the constructor for HealthHandler, injected by Fx.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports that the process is up.
func (h *HealthHandler) Check(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}
