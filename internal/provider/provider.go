package provider

import (
	"fmt"
	"net/http"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/config"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/metrics"
	"github.com/grachmannico95/pix-relay/pkg/logger"
)

// New returns the adapter selected by PAYMENT_PROVIDER.
func New(cfg config.ProviderConfig, clk clock.Clock, log *logger.Logger, m *metrics.Metrics) (domain.PaymentProvider, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Name {
	case config.ProviderPodPay:
		return NewPodPay(cfg.PodPay, httpClient, clk, log, m), nil
	case config.ProviderKeyClub:
		return NewKeyClub(cfg.KeyClub, httpClient, clk, log, m), nil
	case config.ProviderLiraPay:
		return NewLiraPay(cfg.LiraPay, httpClient, clk, log, m), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Name)
	}
}
