package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/grachmannico95/pix-relay/internal/service"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/labstack/echo/v4"
)

const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	webhooks service.WebhookService
	logger   *logger.Logger
}

func NewWebhookHandler(webhooks service.WebhookService, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhooks: webhooks,
		logger:   log,
	}
}

// Receive acknowledges every delivery with 200 so providers never retry;
// parse and publish failures are recorded, not returned.
func (h *WebhookHandler) Receive(c echo.Context) error {
	ctx := c.Request().Context()
	provider := c.Param("provider")

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		h.logger.Warn(ctx, "Failed to read webhook body",
			"provider", provider,
			"error", err,
		)
	}

	// RealIP takes the first X-Forwarded-For hop, then X-Real-IP, then the
	// peer address.
	if _, err := h.webhooks.Ingest(ctx, provider, body, c.RealIP()); err != nil {
		h.logger.Error(ctx, "Webhook ingest failed",
			"provider", provider,
			"error", err,
		)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"received":     true,
		"processed_at": time.Now().UTC().Format(time.RFC3339),
	})
}
