package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
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

type PodPay struct {
	api         *apiClient
	clock       clock.Clock
	configured  bool
	authHeader  string
	withdrawKey string
}

func NewPodPay(cfg config.PodPayConfig, httpClient *http.Client, clk clock.Clock, log *logger.Logger, m *metrics.Metrics) *PodPay {
	p := &PodPay{
		api:         newAPIClient(config.ProviderPodPay, cfg.BaseURL, httpClient, log, m),
		clock:       clk,
		configured:  cfg.PublicKey != "" && cfg.SecretKey != "",
		withdrawKey: cfg.WithdrawKey,
	}
	if p.configured {
		p.authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.PublicKey+":"+cfg.SecretKey))
	}
	return p
}

func (p *PodPay) Name() string { return config.ProviderPodPay }

type podpayItem struct {
	ExternalRef string  `json:"externalRef"`
	Title       string  `json:"title"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Tangible    bool    `json:"tangible"`
}

type podpayDocument struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

type podpayCustomer struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Document podpayDocument `json:"document"`
}

type podpayPix struct {
	ExpiresAt string `json:"expiresAt,omitempty"`
}

type podpayCreateRequest struct {
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency"`
	PaymentMethod string         `json:"paymentMethod"`
	Items         []podpayItem   `json:"items"`
	Customer      podpayCustomer `json:"customer"`
	Pix           podpayPix      `json:"pix"`
	PostbackURL   string         `json:"postbackUrl,omitempty"`
	Metadata      string         `json:"metadata,omitempty"`
}

type podpayPixResponse struct {
	QRCode  string `json:"qrcode"`
	PixCode string `json:"pixCode"`
	EMV     string `json:"emv"`
}

type podpayTransaction struct {
	ID            flexString         `json:"id"`
	ExternalRef   string             `json:"externalRef"`
	Status        flexString         `json:"status"`
	Amount        decimal.Decimal    `json:"amount"`
	PaymentMethod string             `json:"paymentMethod"`
	PixPayload    string             `json:"pixPayload"`
	Pix           *podpayPixResponse `json:"pix"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
	ExpiresAt     string             `json:"expiresAt"`
	PaidAt        string             `json:"paidAt"`
}

func (t podpayTransaction) payload() string {
	if t.PixPayload != "" {
		return t.PixPayload
	}
	if t.Pix == nil {
		return ""
	}
	for _, v := range []string{t.Pix.QRCode, t.Pix.PixCode, t.Pix.EMV} {
		if v != "" {
			return v
		}
	}
	return ""
}

func (p *PodPay) headers() map[string]string {
	return map[string]string{"Authorization": p.authHeader}
}

func (p *PodPay) CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest) (*domain.Transaction, error) {
	const op = "create_transaction"
	if !p.configured {
		return nil, notConfigured(p.Name(), op)
	}

	now := p.clock.Now()
	body := podpayCreateRequest{
		Amount:        req.Amount.InexactFloat64(),
		Currency:      currencyOrDefault(req.Currency),
		PaymentMethod: domain.PaymentMethodPix,
		Items:         p.items(req),
		Customer: podpayCustomer{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Document: podpayDocument{
				Number: domain.OnlyDigits(req.Customer.Document.Number),
				Type:   string(req.Customer.Document.Type),
			},
		},
		PostbackURL: req.PostbackURL,
		Metadata:    utmMetadata(req.UTM),
	}
	if req.PixExpiry > 0 {
		body.Pix.ExpiresAt = now.Add(req.PixExpiry).UTC().Format(time.RFC3339)
	}

	var out podpayTransaction
	raw, err := p.api.do(ctx, apiRequest{
		op:      op,
		method:  http.MethodPost,
		path:    "/transactions",
		body:    body,
		headers: p.headers(),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, p.api.missingID(op, raw)
	}

	tx := p.toTransaction(out, now)
	if tx.ExternalID == "" {
		tx.ExternalID = req.ExternalID
	}
	if tx.Amount.IsZero() {
		tx.Amount = req.Amount
	}
	if tx.ExpiresAt.IsZero() && req.PixExpiry > 0 {
		tx.ExpiresAt = now.Add(req.PixExpiry)
	}
	return tx, nil
}

func (p *PodPay) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	const op = "get_transaction"
	if !p.configured {
		return nil, notConfigured(p.Name(), op)
	}

	var out podpayTransaction
	raw, err := p.api.do(ctx, apiRequest{
		op:      op,
		method:  http.MethodGet,
		path:    "/transactions/" + url.PathEscape(id),
		headers: p.headers(),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, p.api.missingID(op, raw)
	}
	return p.toTransaction(out, p.clock.Now()), nil
}

func (p *PodPay) RefundTransaction(ctx context.Context, id string, amount *decimal.Decimal) (*domain.Ack, error) {
	const op = "refund_transaction"
	if !p.configured {
		return nil, notConfigured(p.Name(), op)
	}

	body := map[string]interface{}{}
	if amount != nil && amount.IsPositive() {
		body["amount"] = amount.InexactFloat64()
	}

	return p.ack(ctx, apiRequest{
		op:      op,
		method:  http.MethodPost,
		path:    "/transactions/" + url.PathEscape(id) + "/refund",
		body:    body,
		headers: p.headers(),
	}, id)
}

func (p *PodPay) CancelTransfer(ctx context.Context, id string) (*domain.Ack, error) {
	const op = "cancel_transfer"
	if !p.configured {
		return nil, notConfigured(p.Name(), op)
	}
	if p.withdrawKey == "" {
		return nil, domain.NewUnavailable(p.Name(), op, domain.ReasonNotConfigured, nil)
	}

	headers := p.headers()
	headers["x-withdraw-key"] = p.withdrawKey

	return p.ack(ctx, apiRequest{
		op:      op,
		method:  http.MethodPost,
		path:    "/transfers/" + url.PathEscape(id) + "/cancel",
		headers: headers,
	}, id)
}

type podpayTransferRequest struct {
	Amount      float64 `json:"amount"`
	PixKey      string  `json:"pixKey"`
	PixKeyType  string  `json:"pixKeyType"`
	Description string  `json:"description,omitempty"`
	ExternalRef string  `json:"externalRef"`
	PostbackURL string  `json:"postbackUrl,omitempty"`
}

func (p *PodPay) CreateCashout(ctx context.Context, req domain.CashoutRequest) (*domain.Ack, error) {
	const op = "create_cashout"
	if !p.configured {
		return nil, notConfigured(p.Name(), op)
	}

	headers := p.headers()
	if p.withdrawKey != "" {
		headers["x-withdraw-key"] = p.withdrawKey
	}

	ack, err := p.ack(ctx, apiRequest{
		op:     op,
		method: http.MethodPost,
		path:   "/transfers",
		body: podpayTransferRequest{
			Amount:      req.Amount.InexactFloat64(),
			PixKey:      domain.FormatPixKey(req.PixKey, req.KeyType),
			PixKeyType:  string(req.KeyType),
			Description: req.Description,
			ExternalRef: req.ExternalID,
			PostbackURL: req.CallbackURL,
		},
		headers: headers,
	}, "")
	if err != nil {
		return nil, err
	}
	if ack.ExternalID == "" {
		ack.ExternalID = req.ExternalID
	}
	return ack, nil
}

func (p *PodPay) ack(ctx context.Context, r apiRequest, fallbackID string) (*domain.Ack, error) {
	var out struct {
		ID          flexString `json:"id"`
		ExternalRef string     `json:"externalRef"`
		Status      flexString `json:"status"`
	}
	raw, err := p.api.do(ctx, r, &out)
	if err != nil {
		return nil, err
	}

	id := string(out.ID)
	if id == "" {
		id = fallbackID
	}
	return &domain.Ack{
		ID:         id,
		ExternalID: out.ExternalRef,
		Status:     string(out.Status),
		Raw:        rawMap(raw),
	}, nil
}

func (p *PodPay) items(req domain.CreateTransactionRequest) []podpayItem {
	if len(req.Items) == 0 {
		title := req.Description
		if title == "" {
			title = "PIX payment"
		}
		return []podpayItem{{
			ExternalRef: req.ExternalID,
			Title:       title,
			UnitPrice:   req.Amount.InexactFloat64(),
			Quantity:    1,
		}}
	}

	items := make([]podpayItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, podpayItem{
			ExternalRef: it.ExternalRef,
			Title:       it.Title,
			UnitPrice:   it.UnitPrice.InexactFloat64(),
			Quantity:    it.Quantity,
			Tangible:    false,
		})
	}
	return items
}

func (p *PodPay) toTransaction(out podpayTransaction, now time.Time) *domain.Transaction {
	tx := &domain.Transaction{
		ID:             string(out.ID),
		ExternalID:     out.ExternalRef,
		Provider:       p.Name(),
		Amount:         out.Amount,
		Currency:       domain.CurrencyBRL,
		Status:         domain.NormalizeStatus(string(out.Status)),
		ProviderStatus: string(out.Status),
		PaymentMethod:  domain.PaymentMethodPix,
		PixPayload:     out.payload(),
		CreatedAt:      parseTime(out.CreatedAt),
		UpdatedAt:      parseTime(out.UpdatedAt),
		ExpiresAt:      parseTime(out.ExpiresAt),
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

func currencyOrDefault(c string) string {
	if c == "" {
		return domain.CurrencyBRL
	}
	return c
}

// utmMetadata serialises campaign parameters; empty when none are set.
func utmMetadata(u domain.UTM) string {
	if u == (domain.UTM{}) {
		return ""
	}
	b, err := json.Marshal(u)
	if err != nil {
		return ""
	}
	return string(b)
}
