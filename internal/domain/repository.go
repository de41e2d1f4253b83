package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentProvider interface {
	Name() string
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*Transaction, error)
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	RefundTransaction(ctx context.Context, id string, amount *decimal.Decimal) (*Ack, error)
	CancelTransfer(ctx context.Context, id string) (*Ack, error)
	CreateCashout(ctx context.Context, req CashoutRequest) (*Ack, error)
}

// StatusSnapshot is the cached payload of the status-check route.
type StatusSnapshot struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	ProviderStatus string     `json:"providerStatus,omitempty"`
	Amount         string     `json:"amount"`
	PixPayload     string     `json:"pixPayload,omitempty"`
	PaidAt         *time.Time `json:"paid_at"`
}

type StatusStore interface {
	// Rate limiting, fixed window per transaction id
	Allow(ctx context.Context, id string, limit int, window time.Duration) (bool, error)

	// Short-lived status cache
	GetCached(ctx context.Context, id string, ttl time.Duration) (*StatusSnapshot, bool, error)
	GetStale(ctx context.Context, id string) (*StatusSnapshot, bool, error)
	PutCached(ctx context.Context, id string, snapshot StatusSnapshot) error

	// Evicts cache entries older than 2x ttl and expired rate windows
	Sweep(ctx context.Context, ttl time.Duration) error
}

// EventLedger tracks processed event ids for idempotent consumers.
type EventLedger interface {
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID string) error
}
