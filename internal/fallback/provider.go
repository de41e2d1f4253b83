package fallback

import (
	"context"
	"time"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/config"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/metrics"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/shopspring/decimal"
)

type Options struct {
	Enabled      bool
	MissingPix   config.MissingPixPolicy
	MerchantName string
	MerchantCity string
	PixExpiry    time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Enabled:      cfg.Fallback.Enabled,
		MissingPix:   cfg.Fallback.MissingPix,
		MerchantName: cfg.Fallback.MerchantName,
		MerchantCity: cfg.Fallback.MerchantCity,
		PixExpiry:    cfg.Provider.PixExpiry,
	}
}

// Provider wraps a PaymentProvider and answers creation failures caused by
// an unusable provider with a synthetic pending transaction. Errors that
// carry a provider decision (auth, rejection) always surface.
type Provider struct {
	next     domain.PaymentProvider
	registry *Registry
	clock    clock.Clock
	opts     Options
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewProvider(next domain.PaymentProvider, registry *Registry, clk clock.Clock, opts Options, log *logger.Logger, m *metrics.Metrics) *Provider {
	if opts.PixExpiry <= 0 {
		opts.PixExpiry = 30 * time.Minute
	}
	if opts.MissingPix == "" {
		opts.MissingPix = config.MissingPixFallback
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &Provider{
		next:     next,
		registry: registry,
		clock:    clk,
		opts:     opts,
		logger:   log,
		metrics:  m,
	}
}

func (p *Provider) Name() string { return p.next.Name() }

// IsTrigger reports whether err should be answered with a synthetic
// transaction.
func IsTrigger(err error) (string, bool) {
	pe, ok := domain.AsProviderError(err)
	if !ok || pe.Kind != domain.KindProviderUnavailable {
		return "", false
	}
	switch pe.Reason {
	case domain.ReasonNotConfigured, domain.ReasonTransport, domain.ReasonNonJSON,
		domain.ReasonDecode, domain.ReasonMissingID:
		return pe.Reason, true
	}
	return "", false
}

func (p *Provider) CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest) (*domain.Transaction, error) {
	tx, err := p.next.CreateTransaction(ctx, req)
	if err != nil {
		reason, trigger := IsTrigger(err)
		if !trigger || !p.opts.Enabled {
			return nil, err
		}
		p.logger.Warn(ctx, "Provider unusable, issuing fallback transaction",
			"is_fallback", true,
			"reason", reason,
			"error", err,
		)
		return p.synthesize(ctx, req, reason), nil
	}

	if tx.PixPayload != "" {
		return tx, nil
	}

	switch p.opts.MissingPix {
	case config.MissingPixPassthrough:
		p.logger.Warn(logger.WithTransactionID(ctx, tx.ID), "Provider transaction has no PIX payload, passing through")
		return tx, nil
	case config.MissingPixFallback:
		if p.opts.Enabled {
			p.logger.Warn(logger.WithTransactionID(ctx, tx.ID), "Provider transaction has no PIX payload, issuing fallback transaction",
				"is_fallback", true,
				"reason", domain.ReasonMissingPix,
			)
			return p.synthesize(ctx, req, domain.ReasonMissingPix), nil
		}
	}

	return nil, &domain.ProviderError{
		Kind:     domain.KindProviderRejected,
		Provider: p.Name(),
		Op:       "create_transaction",
		Reason:   domain.ReasonMissingPix,
	}
}

// GetTransaction serves synthetic ids locally; they never reach the provider.
func (p *Provider) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	if !IsSynthetic(id) {
		return p.next.GetTransaction(ctx, id)
	}

	if tx, ok := p.registry.Get(id); ok {
		return &tx, nil
	}

	tx := p.derive(id)
	p.logger.Debug(logger.WithTransactionID(ctx, id), "Derived unknown synthetic transaction",
		"is_fallback", true,
	)
	return tx, nil
}

func (p *Provider) RefundTransaction(ctx context.Context, id string, amount *decimal.Decimal) (*domain.Ack, error) {
	if IsSynthetic(id) {
		return nil, domain.NewValidationError("synthetic transactions cannot be refunded", "id")
	}
	return p.next.RefundTransaction(ctx, id, amount)
}

func (p *Provider) CancelTransfer(ctx context.Context, id string) (*domain.Ack, error) {
	return p.next.CancelTransfer(ctx, id)
}

func (p *Provider) CreateCashout(ctx context.Context, req domain.CashoutRequest) (*domain.Ack, error) {
	return p.next.CreateCashout(ctx, req)
}

func (p *Provider) synthesize(ctx context.Context, req domain.CreateTransactionRequest, reason string) *domain.Transaction {
	now := p.clock.Now().UTC()
	expiry := req.PixExpiry
	if expiry <= 0 {
		expiry = p.opts.PixExpiry
	}

	tx := domain.Transaction{
		ID:             p.registry.NewID(PrefixFor(reason), now),
		ExternalID:     req.ExternalID,
		Provider:       p.Name(),
		Amount:         req.Amount,
		Currency:       domain.CurrencyBRL,
		Status:         domain.StatusPending,
		ProviderStatus: string(domain.StatusWaitingPayment),
		PaymentMethod:  domain.PaymentMethodPix,
		PixPayload:     PlaceholderPayload(req.Amount, p.opts.MerchantName, p.opts.MerchantCity),
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      now.Add(expiry),
		IsFallback:     true,
		FallbackReason: reason,
	}
	p.registry.Put(tx)
	p.metrics.FallbackTransactions.WithLabelValues(reason).Inc()

	p.logger.Info(logger.WithTransactionID(ctx, tx.ID), "Fallback transaction issued",
		"is_fallback", true,
		"reason", reason,
		"amount", tx.Amount.StringFixed(2),
	)

	return &tx
}

// derive rebuilds a synthetic transaction the registry no longer holds,
// for instance after a restart. The result depends only on id.
func (p *Provider) derive(id string) *domain.Transaction {
	prefix, created, _ := parseSyntheticID(id)
	reason := domain.ReasonNotConfigured
	switch prefix {
	case PrefixEmergency:
		reason = domain.ReasonTransport
	case PrefixFallback:
		reason = domain.ReasonDecode
	}

	return &domain.Transaction{
		ID:             id,
		Provider:       p.Name(),
		Amount:         decimal.Zero,
		Currency:       domain.CurrencyBRL,
		Status:         domain.StatusPending,
		ProviderStatus: string(domain.StatusWaitingPayment),
		PaymentMethod:  domain.PaymentMethodPix,
		PixPayload:     PlaceholderPayload(decimal.Zero, p.opts.MerchantName, p.opts.MerchantCity),
		CreatedAt:      created,
		UpdatedAt:      created,
		ExpiresAt:      created.Add(p.opts.PixExpiry),
		IsFallback:     true,
		FallbackReason: reason,
	}
}
