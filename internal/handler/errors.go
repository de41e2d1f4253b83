package handler

import (
	"errors"
	"net/http"

	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/labstack/echo/v4"
)

const allowListRemediation = "allow-list this server's egress IP in the provider dashboard and check the configured credentials"

// respondError maps the relay error taxonomy onto HTTP. Provider trouble is
// a 400 envelope; only unexpected failures become a 500.
func respondError(c echo.Context, log *logger.Logger, err error) error {
	ctx := c.Request().Context()

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body := map[string]interface{}{
			"success":  false,
			"hasError": true,
			"error":    verr.Message,
		}
		if len(verr.Fields) > 0 {
			body["required"] = verr.Fields
		}
		return c.JSON(http.StatusBadRequest, body)
	}

	if errors.Is(err, domain.ErrRateLimited) {
		return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
			"success":  false,
			"hasError": true,
			"error":    "too many status checks for this transaction, retry later",
		})
	}

	if pe, ok := domain.AsProviderError(err); ok {
		details := map[string]interface{}{
			"status":  pe.StatusCode,
			"reason":  pe.Reason,
			"message": pe.Body,
		}
		if pe.Kind == domain.KindProviderAuth {
			log.Warn(ctx, "Provider refused authorization",
				"provider", pe.Provider,
				"operation", pe.Op,
				"status", pe.StatusCode,
			)
			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"success":     false,
				"hasError":    true,
				"error":       "provider authorization failed",
				"remediation": allowListRemediation,
				"details":     details,
			})
		}

		log.Warn(ctx, "Provider call failed",
			"provider", pe.Provider,
			"operation", pe.Op,
			"kind", string(pe.Kind),
			"reason", pe.Reason,
			"status", pe.StatusCode,
		)
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success":  false,
			"hasError": true,
			"error":    providerMessage(pe),
			"details":  details,
		})
	}

	log.Error(ctx, "Unhandled error",
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success":  false,
		"hasError": true,
		"error":    "internal server error",
	})
}

func providerMessage(pe *domain.ProviderError) string {
	switch {
	case pe.Reason == domain.ReasonNotSupported:
		return "operation not supported by provider " + pe.Provider
	case pe.Reason == domain.ReasonNotConfigured:
		return "payment provider is not configured"
	case pe.Kind == domain.KindProviderUnavailable:
		return "payment provider unavailable"
	default:
		return "payment provider rejected the request"
	}
}
