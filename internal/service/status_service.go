package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/fallback"
	"github.com/grachmannico95/pix-relay/internal/metrics"
	"github.com/grachmannico95/pix-relay/pkg/logger"
)

type StatusService interface {
	CheckStatus(ctx context.Context, id string) (*domain.StatusSnapshot, error)
}

type StatusConfig struct {
	CacheTTL   time.Duration
	RateWindow time.Duration
	RateLimit  int
}

type statusService struct {
	provider domain.PaymentProvider
	store    domain.StatusStore
	cfg      StatusConfig
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewStatusService(provider domain.PaymentProvider, store domain.StatusStore, cfg StatusConfig, log *logger.Logger, m *metrics.Metrics) StatusService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = 60 * time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 2
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &statusService{
		provider: provider,
		store:    store,
		cfg:      cfg,
		logger:   log,
		metrics:  m,
	}
}

// CheckStatus applies, in order: lazy sweep, per-id rate limit, the short
// cache, then a provider read. A provider 429 is answered from the last
// snapshot of id when one exists.
func (s *statusService) CheckStatus(ctx context.Context, id string) (*domain.StatusSnapshot, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("missing required fields", "id")
	}
	ctx = logger.WithTransactionID(ctx, id)

	if err := s.store.Sweep(ctx, s.cfg.CacheTTL); err != nil {
		s.logger.Warn(ctx, "Failed to sweep status store", "error", err)
	}

	allowed, err := s.store.Allow(ctx, id, s.cfg.RateLimit, s.cfg.RateWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrInternal, err)
	}
	if !allowed {
		s.metrics.StatusLookups.WithLabelValues(metrics.LookupLimited).Inc()
		s.logger.Warn(ctx, "Status check rate limited",
			"limit", s.cfg.RateLimit,
			"window", s.cfg.RateWindow.String(),
		)
		return nil, domain.ErrRateLimited
	}

	cached, ok, err := s.store.GetCached(ctx, id, s.cfg.CacheTTL)
	if err != nil {
		s.logger.Warn(ctx, "Failed to read status cache", "error", err)
	}
	if ok {
		s.metrics.StatusLookups.WithLabelValues(metrics.LookupHit).Inc()
		s.logger.Debug(ctx, "Status served from cache")
		return cached, nil
	}

	tx, err := s.provider.GetTransaction(ctx, id)
	if err != nil {
		return s.onProviderError(ctx, id, err)
	}

	snapshot := SnapshotOf(tx)
	if err := s.store.PutCached(ctx, id, snapshot); err != nil {
		s.logger.Warn(ctx, "Failed to cache status", "error", err)
	}

	result := metrics.LookupMiss
	if fallback.IsSynthetic(id) {
		result = metrics.LookupSynthetic
	}
	s.metrics.StatusLookups.WithLabelValues(result).Inc()
	s.logger.Debug(ctx, "Status fetched from provider",
		"status", snapshot.Status,
	)

	return &snapshot, nil
}

func (s *statusService) onProviderError(ctx context.Context, id string, err error) (*domain.StatusSnapshot, error) {
	pe, ok := domain.AsProviderError(err)
	if !ok || pe.StatusCode != http.StatusTooManyRequests {
		s.logger.Error(ctx, "Failed to fetch status", "error", err)
		return nil, err
	}

	stale, found, staleErr := s.store.GetStale(ctx, id)
	if staleErr == nil && found {
		s.metrics.StatusLookups.WithLabelValues(metrics.LookupStale).Inc()
		s.logger.Warn(ctx, "Provider throttled status read, serving last snapshot")
		return stale, nil
	}

	s.logger.Warn(ctx, "Provider throttled status read, no snapshot to serve")
	return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
}

// SnapshotOf is the status-route view of tx.
func SnapshotOf(tx *domain.Transaction) domain.StatusSnapshot {
	return domain.StatusSnapshot{
		ID:             tx.ID,
		Status:         string(tx.Status),
		ProviderStatus: tx.ProviderStatus,
		Amount:         tx.Amount.StringFixed(2),
		PixPayload:     tx.PixPayload,
		PaidAt:         tx.PaidAt,
	}
}
