package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/shopspring/decimal"
)

const externalRefPrefix = "REF-"

type TransactionService interface {
	CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	RefundTransaction(ctx context.Context, id string, amount *decimal.Decimal) (*domain.Ack, error)
	CancelTransfer(ctx context.Context, id string) (*domain.Ack, error)
	CreateCashout(ctx context.Context, req domain.CashoutRequest) (*domain.Ack, error)
}

type TransactionConfig struct {
	PixExpiry time.Duration

	// Postback URL handed to the provider; empty omits it.
	CallbackURL string
}

type transactionService struct {
	provider domain.PaymentProvider
	clock    clock.Clock
	cfg      TransactionConfig
	logger   *logger.Logger
}

func NewTransactionService(provider domain.PaymentProvider, clk clock.Clock, cfg TransactionConfig, log *logger.Logger) TransactionService {
	if clk == nil {
		clk = clock.New()
	}
	if cfg.PixExpiry <= 0 {
		cfg.PixExpiry = 30 * time.Minute
	}
	return &transactionService{
		provider: provider,
		clock:    clk,
		cfg:      cfg,
		logger:   log,
	}
}

// NewExternalRef returns "REF-" followed by 12 upper-case hex characters.
func NewExternalRef() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return externalRefPrefix + strings.ToUpper(id[:12])
}

func (s *transactionService) CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := validateCreate(&req); err != nil {
		return nil, err
	}

	if req.ExternalID == "" {
		req.ExternalID = NewExternalRef()
	}
	if req.Currency == "" {
		req.Currency = domain.CurrencyBRL
	}
	if req.PixExpiry <= 0 {
		req.PixExpiry = s.cfg.PixExpiry
	}
	if req.PostbackURL == "" {
		req.PostbackURL = s.cfg.CallbackURL
	}

	ctx = logger.WithProvider(ctx, s.provider.Name())
	s.logger.Info(ctx, "Creating transaction",
		"external_id", req.ExternalID,
		"amount", req.Amount.StringFixed(2),
		"document", logger.MaskDocument(req.Customer.Document.Number),
	)

	tx, err := s.provider.CreateTransaction(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "Failed to create transaction",
			"external_id", req.ExternalID,
			"error", err,
		)
		return nil, err
	}

	s.complete(tx, req)

	s.logger.Info(logger.WithTransactionID(ctx, tx.ID), "Transaction created",
		"status", string(tx.Status),
		"is_fallback", tx.IsFallback,
	)

	return tx, nil
}

// complete fills fields some providers leave out of their create response.
func (s *transactionService) complete(tx *domain.Transaction, req domain.CreateTransactionRequest) {
	now := s.clock.Now().UTC()
	if tx.Amount.IsZero() {
		tx.Amount = req.Amount
	}
	if tx.ExternalID == "" {
		tx.ExternalID = req.ExternalID
	}
	if tx.Currency == "" {
		tx.Currency = req.Currency
	}
	if tx.PaymentMethod == "" {
		tx.PaymentMethod = domain.PaymentMethodPix
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	if tx.UpdatedAt.IsZero() {
		tx.UpdatedAt = tx.CreatedAt
	}
	if tx.ExpiresAt.IsZero() {
		tx.ExpiresAt = tx.CreatedAt.Add(req.PixExpiry)
	}
}

func validateCreate(req *domain.CreateTransactionRequest) error {
	var missing []string
	if !req.Amount.IsPositive() {
		missing = append(missing, "amount")
	}

	doc := &req.Customer.Document
	if strings.TrimSpace(doc.Number) == "" {
		missing = append(missing, "customer.document.number")
	} else {
		if doc.Type == "" {
			doc.Type = domain.DocumentTypeFor(doc.Number)
		}
		if !domain.ValidDocument(doc.Number, doc.Type) {
			return domain.NewValidationError("document must have 11 digits (CPF) or 14 digits (CNPJ)", "customer.document.number")
		}
	}

	if len(missing) > 0 {
		return domain.NewValidationError("missing required fields", missing...)
	}
	return nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("missing required fields", "id")
	}

	ctx = logger.WithTransactionID(ctx, id)
	s.logger.Debug(ctx, "Getting transaction")

	tx, err := s.provider.GetTransaction(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "Failed to get transaction",
			"error", err,
		)
		return nil, err
	}

	return tx, nil
}

func (s *transactionService) RefundTransaction(ctx context.Context, id string, amount *decimal.Decimal) (*domain.Ack, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("missing required fields", "id")
	}
	if amount != nil && !amount.IsPositive() {
		return nil, domain.NewValidationError("refund amount must be positive", "amount")
	}

	ctx = logger.WithTransactionID(ctx, id)
	s.logger.Info(ctx, "Refunding transaction",
		"partial", amount != nil,
	)

	ack, err := s.provider.RefundTransaction(ctx, id, amount)
	if err != nil {
		s.logger.Error(ctx, "Failed to refund transaction",
			"error", err,
		)
		return nil, err
	}

	return ack, nil
}

func (s *transactionService) CancelTransfer(ctx context.Context, id string) (*domain.Ack, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("missing required fields", "id")
	}

	ctx = logger.WithTransactionID(ctx, id)
	s.logger.Info(ctx, "Cancelling transfer")

	ack, err := s.provider.CancelTransfer(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "Failed to cancel transfer",
			"error", err,
		)
		return nil, err
	}

	return ack, nil
}

func (s *transactionService) CreateCashout(ctx context.Context, req domain.CashoutRequest) (*domain.Ack, error) {
	var missing []string
	if !req.Amount.IsPositive() {
		missing = append(missing, "amount")
	}
	if strings.TrimSpace(req.ExternalID) == "" {
		missing = append(missing, "external_id")
	}
	if strings.TrimSpace(req.PixKey) == "" {
		missing = append(missing, "pix_key")
	}
	if req.KeyType == "" {
		missing = append(missing, "key_type")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("missing required fields", missing...)
	}

	keyType, ok := domain.ParsePixKeyType(string(req.KeyType))
	if !ok {
		return nil, domain.NewValidationError("key_type must be one of EMAIL, CPF, CNPJ, PHONE", "key_type")
	}
	if !domain.ValidPixKey(req.PixKey, keyType) {
		return nil, domain.NewValidationError("pix_key does not match key_type "+string(keyType), "pix_key")
	}

	req.KeyType = keyType
	req.PixKey = domain.FormatPixKey(req.PixKey, keyType)
	if req.CallbackURL == "" {
		req.CallbackURL = s.cfg.CallbackURL
	}

	ctx = logger.WithProvider(ctx, s.provider.Name())
	s.logger.Info(ctx, "Creating cashout",
		"external_id", req.ExternalID,
		"amount", req.Amount.StringFixed(2),
		"key_type", string(keyType),
	)

	ack, err := s.provider.CreateCashout(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "Failed to create cashout",
			"external_id", req.ExternalID,
			"error", err,
		)
		return nil, err
	}

	if ack.ExternalID == "" {
		ack.ExternalID = req.ExternalID
	}
	return ack, nil
}
