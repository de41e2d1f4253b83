package provider

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/config"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/metrics"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/shopspring/decimal"
)

type LiraPay struct {
	api       *apiClient
	clock     clock.Clock
	apiSecret string
}

func NewLiraPay(cfg config.LiraPayConfig, httpClient *http.Client, clk clock.Clock, log *logger.Logger, m *metrics.Metrics) *LiraPay {
	return &LiraPay{
		api:       newAPIClient(config.ProviderLiraPay, cfg.BaseURL, httpClient, log, m),
		clock:     clk,
		apiSecret: cfg.APISecret,
	}
}

func (l *LiraPay) Name() string { return config.ProviderLiraPay }

type liraItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	IsPhysical  bool    `json:"is_physical"`
}

type liraCustomer struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	DocumentType string `json:"document_type"`
	Document     string `json:"document"`
}

type liraCreateRequest struct {
	ExternalID    string       `json:"external_id"`
	TotalAmount   float64      `json:"total_amount"`
	PaymentMethod string       `json:"payment_method"`
	WebhookURL    string       `json:"webhook_url,omitempty"`
	Items         []liraItem   `json:"items"`
	Customer      liraCustomer `json:"customer"`
}

type liraTransaction struct {
	ID          flexString       `json:"id"`
	ExternalID  string           `json:"external_id"`
	Status      flexString       `json:"status"`
	TotalValue  *decimal.Decimal `json:"total_value"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	HasError    bool             `json:"hasError"`
	Message     string           `json:"message"`
	Pix         *struct {
		Payload string `json:"payload"`
	} `json:"pix"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	PaidAt    string `json:"paid_at"`
}

func (t liraTransaction) amount() decimal.Decimal {
	if t.TotalValue != nil {
		return *t.TotalValue
	}
	if t.TotalAmount != nil {
		return *t.TotalAmount
	}
	return decimal.Zero
}

func (l *LiraPay) headers() map[string]string {
	return map[string]string{"api-secret": l.apiSecret}
}

func (l *LiraPay) CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest) (*domain.Transaction, error) {
	const op = "create_transaction"
	if l.apiSecret == "" {
		return nil, notConfigured(l.Name(), op)
	}

	now := l.clock.Now()
	docType := req.Customer.Document.Type
	if docType == "" {
		docType = domain.DocumentTypeFor(req.Customer.Document.Number)
	}

	var out liraTransaction
	raw, err := l.api.do(ctx, apiRequest{
		op:     op,
		method: http.MethodPost,
		path:   "/transactions",
		body: liraCreateRequest{
			ExternalID:    req.ExternalID,
			TotalAmount:   req.Amount.InexactFloat64(),
			PaymentMethod: "PIX",
			WebhookURL:    req.PostbackURL,
			Items:         l.items(req),
			Customer: liraCustomer{
				Name:         req.Customer.Name,
				Email:        req.Customer.Email,
				DocumentType: string(docType),
				Document:     domain.OnlyDigits(req.Customer.Document.Number),
			},
		},
		headers: l.headers(),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.HasError {
		return nil, l.rejected(op, raw)
	}
	if out.ID == "" {
		return nil, l.api.missingID(op, raw)
	}

	tx := l.toTransaction(out, now)
	if tx.ExternalID == "" {
		tx.ExternalID = req.ExternalID
	}
	if tx.Amount.IsZero() {
		tx.Amount = req.Amount
	}
	if req.PixExpiry > 0 {
		tx.ExpiresAt = now.Add(req.PixExpiry)
	}
	return tx, nil
}

func (l *LiraPay) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	const op = "get_transaction"
	if l.apiSecret == "" {
		return nil, notConfigured(l.Name(), op)
	}

	var out liraTransaction
	raw, err := l.api.do(ctx, apiRequest{
		op:      op,
		method:  http.MethodGet,
		path:    "/transactions/" + url.PathEscape(id),
		headers: l.headers(),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.HasError {
		return nil, l.rejected(op, raw)
	}
	if out.ID == "" {
		return nil, l.api.missingID(op, raw)
	}
	return l.toTransaction(out, l.clock.Now()), nil
}

func (l *LiraPay) RefundTransaction(ctx context.Context, id string, amount *decimal.Decimal) (*domain.Ack, error) {
	return nil, domain.NewNotSupported(l.Name(), "refund_transaction")
}

func (l *LiraPay) CancelTransfer(ctx context.Context, id string) (*domain.Ack, error) {
	return nil, domain.NewNotSupported(l.Name(), "cancel_transfer")
}

func (l *LiraPay) CreateCashout(ctx context.Context, req domain.CashoutRequest) (*domain.Ack, error) {
	return nil, domain.NewNotSupported(l.Name(), "create_cashout")
}

// rejected covers 2xx bodies that still flag hasError.
func (l *LiraPay) rejected(op string, raw []byte) error {
	return &domain.ProviderError{
		Kind:       domain.KindProviderRejected,
		Provider:   l.Name(),
		Op:         op,
		Reason:     domain.ReasonHTTPStatus,
		StatusCode: http.StatusOK,
		Body:       truncate(raw),
	}
}

func (l *LiraPay) items(req domain.CreateTransactionRequest) []liraItem {
	if len(req.Items) == 0 {
		title := req.Description
		if title == "" {
			title = "PIX payment"
		}
		return []liraItem{{
			ID:          req.ExternalID,
			Title:       title,
			Description: title,
			Price:       req.Amount.InexactFloat64(),
			Quantity:    1,
		}}
	}

	items := make([]liraItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, liraItem{
			ID:          it.ExternalRef,
			Title:       it.Title,
			Description: it.Title,
			Price:       it.UnitPrice.InexactFloat64(),
			Quantity:    it.Quantity,
			IsPhysical:  it.Tangible,
		})
	}
	return items
}

func (l *LiraPay) toTransaction(out liraTransaction, now time.Time) *domain.Transaction {
	tx := &domain.Transaction{
		ID:             string(out.ID),
		ExternalID:     out.ExternalID,
		Provider:       l.Name(),
		Amount:         out.amount(),
		Currency:       domain.CurrencyBRL,
		Status:         domain.NormalizeStatus(string(out.Status)),
		ProviderStatus: string(out.Status),
		PaymentMethod:  domain.PaymentMethodPix,
		CreatedAt:      parseTime(out.CreatedAt),
		UpdatedAt:      parseTime(out.UpdatedAt),
	}
	if out.Pix != nil {
		tx.PixPayload = out.Pix.Payload
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	if tx.UpdatedAt.IsZero() {
		tx.UpdatedAt = tx.CreatedAt
	}
	if paid := parseTime(out.PaidAt); !paid.IsZero() {
		tx.PaidAt = &paid
	}
	return tx
}
