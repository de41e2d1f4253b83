package provider

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/config"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/metrics"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/shopspring/decimal"
)

// KeyClub authenticates with client credentials and reuses the bearer
// token until it expires or the API answers 401.
type KeyClub struct {
	api          *apiClient
	clock        clock.Clock
	logger       *logger.Logger
	clientID     string
	clientSecret string
	tokenTTL     time.Duration

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewKeyClub(cfg config.KeyClubConfig, httpClient *http.Client, clk clock.Clock, log *logger.Logger, m *metrics.Metrics) *KeyClub {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &KeyClub{
		api:          newAPIClient(config.ProviderKeyClub, cfg.BaseURL, httpClient, log, m),
		clock:        clk,
		logger:       log,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenTTL:     ttl,
	}
}

func (k *KeyClub) Name() string { return config.ProviderKeyClub }

func (k *KeyClub) configured() bool {
	return k.clientID != "" && k.clientSecret != ""
}

type keyclubLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

func (k *KeyClub) bearer(ctx context.Context) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.clock.Now()
	if k.token != "" && now.Before(k.tokenExpiry) {
		return k.token, nil
	}

	var out keyclubLoginResponse
	raw, err := k.api.do(ctx, apiRequest{
		op:     "login",
		method: http.MethodPost,
		path:   "/auth/login",
		body: map[string]string{
			"client_id":     k.clientID,
			"client_secret": k.clientSecret,
		},
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", &domain.ProviderError{
			Kind:     domain.KindProviderAuth,
			Provider: k.Name(),
			Op:       "login",
			Body:     truncate(raw),
			Err:      errors.New("login response carried no token"),
		}
	}

	ttl := k.tokenTTL
	if out.ExpiresIn > 0 {
		if fromAPI := time.Duration(out.ExpiresIn) * time.Second; fromAPI < ttl {
			ttl = fromAPI
		}
	}
	k.token = out.Token
	k.tokenExpiry = now.Add(ttl)

	return k.token, nil
}

func (k *KeyClub) invalidate(token string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.token == token {
		k.token = ""
		k.tokenExpiry = time.Time{}
	}
}

// authorized runs r with a bearer token, re-authenticating once on 401.
func (k *KeyClub) authorized(ctx context.Context, r apiRequest, out interface{}) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		token, err := k.bearer(ctx)
		if err != nil {
			return nil, err
		}

		r.headers = map[string]string{"Authorization": "Bearer " + token}
		raw, err := k.api.do(ctx, r, out)
		if pe, ok := domain.AsProviderError(err); ok && pe.StatusCode == http.StatusUnauthorized && attempt == 0 {
			k.logger.Info(ctx, "Provider token rejected, re-authenticating",
				"provider", k.Name(),
				"operation", r.op,
			)
			k.invalidate(token)
			continue
		}
		return raw, err
	}
}

type keyclubPayer struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Document    string `json:"document"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMContent  string `json:"utm_content"`
	UTMTerm     string `json:"utm_term"`
}

type keyclubDepositRequest struct {
	Amount            float64      `json:"amount"`
	ExternalID        string       `json:"external_id"`
	ClientCallbackURL string       `json:"clientCallbackUrl,omitempty"`
	Payer             keyclubPayer `json:"payer"`
}

type keyclubTransaction struct {
	TransactionID flexString      `json:"transaction_id"`
	ID            flexString      `json:"id"`
	ExternalID    string          `json:"external_id"`
	PixCode       string          `json:"pix_code"`
	QRCode        string          `json:"qr_code"`
	Amount        decimal.Decimal `json:"amount"`
	Status        flexString      `json:"status"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
	PaidAt        string          `json:"paid_at"`
}

func (t keyclubTransaction) id() string {
	if t.TransactionID != "" {
		return string(t.TransactionID)
	}
	return string(t.ID)
}

func (t keyclubTransaction) payload() string {
	if t.PixCode != "" {
		return t.PixCode
	}
	return t.QRCode
}

func (k *KeyClub) CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest) (*domain.Transaction, error) {
	const op = "create_transaction"
	if !k.configured() {
		return nil, notConfigured(k.Name(), op)
	}

	now := k.clock.Now()
	var out keyclubTransaction
	raw, err := k.authorized(ctx, apiRequest{
		op:     op,
		method: http.MethodPost,
		path:   "/payments/deposit",
		body: keyclubDepositRequest{
			Amount:            req.Amount.InexactFloat64(),
			ExternalID:        req.ExternalID,
			ClientCallbackURL: req.PostbackURL,
			Payer: keyclubPayer{
				Name:        req.Customer.Name,
				Email:       req.Customer.Email,
				Document:    domain.OnlyDigits(req.Customer.Document.Number),
				UTMSource:   req.UTM.Source,
				UTMMedium:   req.UTM.Medium,
				UTMCampaign: req.UTM.Campaign,
				UTMContent:  req.UTM.Content,
				UTMTerm:     req.UTM.Term,
			},
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.id() == "" {
		return nil, k.api.missingID(op, raw)
	}

	tx := k.toTransaction(out, now)
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

func (k *KeyClub) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	const op = "get_transaction"
	if !k.configured() {
		return nil, notConfigured(k.Name(), op)
	}

	var out keyclubTransaction
	raw, err := k.authorized(ctx, apiRequest{
		op:     op,
		method: http.MethodGet,
		path:   "/transactions/" + url.PathEscape(id),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.id() == "" {
		return nil, k.api.missingID(op, raw)
	}
	return k.toTransaction(out, k.clock.Now()), nil
}

func (k *KeyClub) RefundTransaction(ctx context.Context, id string, amount *decimal.Decimal) (*domain.Ack, error) {
	return nil, domain.NewNotSupported(k.Name(), "refund_transaction")
}

func (k *KeyClub) CancelTransfer(ctx context.Context, id string) (*domain.Ack, error) {
	return nil, domain.NewNotSupported(k.Name(), "cancel_transfer")
}

type keyclubWithdrawRequest struct {
	Amount            float64 `json:"amount"`
	ExternalID        string  `json:"external_id"`
	PixKey            string  `json:"pix_key"`
	KeyType           string  `json:"key_type"`
	Description       string  `json:"description"`
	ClientCallbackURL string  `json:"clientCallbackUrl,omitempty"`
}

func (k *KeyClub) CreateCashout(ctx context.Context, req domain.CashoutRequest) (*domain.Ack, error) {
	const op = "create_cashout"
	if !k.configured() {
		return nil, notConfigured(k.Name(), op)
	}

	description := req.Description
	if description == "" {
		description = "Withdrawal " + req.ExternalID
	}

	var out struct {
		TransactionID flexString `json:"transaction_id"`
		ID            flexString `json:"id"`
		ExternalID    string     `json:"external_id"`
		Status        flexString `json:"status"`
	}
	raw, err := k.authorized(ctx, apiRequest{
		op:     op,
		method: http.MethodPost,
		path:   "/withdrawals/withdraw",
		body: keyclubWithdrawRequest{
			Amount:            req.Amount.InexactFloat64(),
			ExternalID:        req.ExternalID,
			PixKey:            domain.FormatPixKey(req.PixKey, req.KeyType),
			KeyType:           string(req.KeyType),
			Description:       description,
			ClientCallbackURL: req.CallbackURL,
		},
	}, &out)
	if err != nil {
		return nil, err
	}

	id := string(out.TransactionID)
	if id == "" {
		id = string(out.ID)
	}
	externalID := out.ExternalID
	if externalID == "" {
		externalID = req.ExternalID
	}
	return &domain.Ack{
		ID:         id,
		ExternalID: externalID,
		Status:     string(out.Status),
		Raw:        rawMap(raw),
	}, nil
}

func (k *KeyClub) toTransaction(out keyclubTransaction, now time.Time) *domain.Transaction {
	status := string(out.Status)
	if status == "" {
		status = "PENDING"
	}
	tx := &domain.Transaction{
		ID:             out.id(),
		ExternalID:     out.ExternalID,
		Provider:       k.Name(),
		Amount:         out.Amount,
		Currency:       domain.CurrencyBRL,
		Status:         domain.NormalizeStatus(status),
		ProviderStatus: status,
		PaymentMethod:  domain.PaymentMethodPix,
		PixPayload:     out.payload(),
		CreatedAt:      parseTime(out.CreatedAt),
		UpdatedAt:      parseTime(out.UpdatedAt),
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
