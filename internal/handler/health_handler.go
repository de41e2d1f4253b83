package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	provider   string
	configured bool
}

func NewHealthHandler(provider string, configured bool) *HealthHandler {
	return &HealthHandler{provider: provider, configured: configured}
}

func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":              "ok",
		"timestamp":           time.Now().Format(time.RFC3339),
		"provider":            h.provider,
		"provider_configured": h.configured,
	})
}
