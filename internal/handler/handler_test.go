package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/mocks"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var handlerNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type handlerFixture struct {
	echo         *echo.Echo
	transactions *mocks.MockTransactionService
	status       *mocks.MockStatusService
	webhooks     *mocks.MockWebhookService
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	log := logger.NewNop()
	f := &handlerFixture{
		echo:         echo.New(),
		transactions: mocks.NewMockTransactionService(t),
		status:       mocks.NewMockStatusService(t),
		webhooks:     mocks.NewMockWebhookService(t),
	}
	v, err := NewValidator()
	require.NoError(t, err)
	f.echo.Validator = v

	tx := NewTransactionHandler(f.transactions, f.status, log)
	deposit := NewDepositHandler(f.transactions, log)
	cashout := NewCashoutHandler(f.transactions, log)
	webhook := NewWebhookHandler(f.webhooks, log)

	f.echo.POST("/api/transactions", tx.Create)
	f.echo.GET("/api/transactions/:id", tx.Get)
	f.echo.GET("/api/get-transaction", tx.Get)
	f.echo.GET("/api/pix/status/:id", tx.Status)
	f.echo.POST("/api/transactions/:id/refund", tx.Refund)
	f.echo.POST("/api/transfers/:id/cancel", tx.CancelTransfer)
	f.echo.POST("/api/deposit", deposit.Deposit)
	f.echo.POST("/api/pix/create", deposit.CreatePix)
	f.echo.POST("/api/cashout", cashout.Create)
	f.echo.POST("/api/webhook/:provider", webhook.Receive)
	f.echo.GET("/health", NewHealthHandler("podpay", true).Check)

	return f
}

func (f *handlerFixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func sampleTx() *domain.Transaction {
	return &domain.Transaction{
		ID:            "tx_1",
		ExternalID:    "REF-ABC123",
		Provider:      "podpay",
		Amount:        decimal.RequireFromString("49.90"),
		Currency:      domain.CurrencyBRL,
		Status:        domain.StatusPending,
		PaymentMethod: domain.PaymentMethodPix,
		PixPayload:    "00020126...6304ABCD",
		CreatedAt:     handlerNow,
		ExpiresAt:     handlerNow.Add(30 * time.Minute),
	}
}

const createBody = `{
	"amount": 49.90,
	"description": "Balance unlock",
	"customer": {"name": "Ana Souza", "email": "ana@example.com", "document": {"number": "123.456.789-01", "type": "cpf"}},
	"utm_params": {"utm_source": "ads"}
}`

func TestTransactionHandler_Create(t *testing.T) {
	f := newHandlerFixture(t)

	f.transactions.EXPECT().
		CreateTransaction(mock.Anything, mock.MatchedBy(func(req domain.CreateTransactionRequest) bool {
			return req.Amount.Equal(decimal.RequireFromString("49.90")) &&
				req.Customer.Document.Type == domain.DocumentTypeCPF &&
				req.UTM.Source == "ads"
		})).
		Return(sampleTx(), nil).
		Once()

	rec := f.do(http.MethodPost, "/api/transactions", createBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "tx_1", data["id"])
	assert.Equal(t, "49.9", data["amount"])
}

func TestTransactionHandler_CreateMissingFields(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/api/transactions", `{"customer": {"name": "Ana"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, true, body["hasError"])
	assert.ElementsMatch(t, []interface{}{"amount", "customer.email", "customer.document.number"}, body["required"])
}

func TestTransactionHandler_CreateInvalidDocument(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/api/transactions", `{"amount": 10, "customer": {"name": "Ana", "email": "ana@example.com", "document": {"number": "123"}}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, []interface{}{"customer.document.number"}, body["required"])
}

func TestTransactionHandler_CreateMalformedJSON(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/api/transactions", `{"amount":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionHandler_ErrorMapping(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"auth":          {&domain.ProviderError{Kind: domain.KindProviderAuth, Provider: "podpay", Op: "create_transaction", StatusCode: 403}, http.StatusForbidden},
		"rejected":      {&domain.ProviderError{Kind: domain.KindProviderRejected, Provider: "podpay", Op: "create_transaction", StatusCode: 422, Body: `{"message":"invalid document"}`}, http.StatusBadRequest},
		"unavailable":   {domain.NewUnavailable("podpay", "create_transaction", domain.ReasonTransport, errors.New("dial tcp")), http.StatusBadRequest},
		"not supported": {domain.NewNotSupported("lirapay", "create_cashout"), http.StatusBadRequest},
		"validation":    {domain.NewValidationError("bad", "amount"), http.StatusBadRequest},
		"unexpected":    {errors.New("nil map"), http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.transactions.EXPECT().CreateTransaction(mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			rec := f.do(http.MethodPost, "/api/transactions", createBody)

			assert.Equal(t, tc.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, true, body["hasError"])
		})
	}
}

func TestTransactionHandler_AuthErrorHasRemediation(t *testing.T) {
	f := newHandlerFixture(t)
	f.transactions.EXPECT().CancelTransfer(mock.Anything, "tr_1").
		Return(nil, &domain.ProviderError{Kind: domain.KindProviderAuth, Provider: "podpay", Op: "cancel_transfer", StatusCode: 403, Body: "forbidden"}).Once()

	rec := f.do(http.MethodPost, "/api/transfers/tr_1/cancel", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decode(t, rec)
	assert.Contains(t, body["remediation"], "allow-list")
	details := body["details"].(map[string]interface{})
	assert.Equal(t, 403.0, details["status"])
	assert.Equal(t, "forbidden", details["message"])
}

func TestTransactionHandler_Get(t *testing.T) {
	f := newHandlerFixture(t)
	f.transactions.EXPECT().GetTransaction(mock.Anything, "tx_1").Return(sampleTx(), nil).Twice()

	rec := f.do(http.MethodGet, "/api/transactions/tx_1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/get-transaction?id=tx_1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
}

func TestTransactionHandler_GetMissingID(t *testing.T) {
	f := newHandlerFixture(t)
	f.transactions.EXPECT().GetTransaction(mock.Anything, "").
		Return(nil, domain.NewValidationError("missing required fields", "id")).Once()

	rec := f.do(http.MethodGet, "/api/get-transaction", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []interface{}{"id"}, decode(t, rec)["required"])
}

func TestTransactionHandler_Status(t *testing.T) {
	f := newHandlerFixture(t)
	f.status.EXPECT().CheckStatus(mock.Anything, "tx_1").
		Return(&domain.StatusSnapshot{ID: "tx_1", Status: "paid", ProviderStatus: "PAID", Amount: "49.90"}, nil).Once()
	f.status.EXPECT().CheckStatus(mock.Anything, "tx_1").Return(nil, domain.ErrRateLimited).Once()

	rec := f.do(http.MethodGet, "/api/pix/status/tx_1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "paid", body["status"])
	assert.Equal(t, "49.90", body["amount"])
	assert.Contains(t, body, "paid_at")

	rec = f.do(http.MethodGet, "/api/pix/status/tx_1", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestTransactionHandler_Refund(t *testing.T) {
	f := newHandlerFixture(t)
	f.transactions.EXPECT().
		RefundTransaction(mock.Anything, "tx_1", mock.MatchedBy(func(a *decimal.Decimal) bool {
			return a != nil && a.Equal(decimal.NewFromInt(10))
		})).
		Return(&domain.Ack{ID: "tx_1", Status: "refunded"}, nil).Once()
	f.transactions.EXPECT().
		RefundTransaction(mock.Anything, "tx_2", (*decimal.Decimal)(nil)).
		Return(&domain.Ack{ID: "tx_2", Status: "refunded"}, nil).Once()

	rec := f.do(http.MethodPost, "/api/transactions/tx_1/refund", `{"amount": 10}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/api/transactions/tx_2/refund", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDepositHandler_Deposit(t *testing.T) {
	f := newHandlerFixture(t)
	f.transactions.EXPECT().
		CreateTransaction(mock.Anything, mock.MatchedBy(func(req domain.CreateTransactionRequest) bool {
			return req.ExternalID == "dep-1" &&
				req.PostbackURL == "https://shop.example.com/cb" &&
				req.Customer.Document.Number == "12345678901" &&
				req.UTM.Campaign == "spring"
		})).
		Return(sampleTx(), nil).Once()

	rec := f.do(http.MethodPost, "/api/deposit", `{
		"amount": 49.90,
		"external_id": "dep-1",
		"clientCallbackUrl": "https://shop.example.com/cb",
		"payer": {"name": "Ana Souza", "email": "ana@example.com", "document": "12345678901"},
		"utm_params": {"utm_campaign": "spring"}
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "tx_1", body["id"])
	assert.Equal(t, "tx_1", body["transaction_id"])
	assert.Equal(t, "REF-ABC123", body["external_id"])
	assert.Equal(t, 49.9, body["amount"])
	assert.Equal(t, false, body["hasError"])
	assert.Equal(t, body["qr_code"], body["pix_code"])
	pix := body["pix"].(map[string]interface{})
	assert.Equal(t, "00020126...6304ABCD", pix["payload"])
	assert.Equal(t, "2025-03-10T12:30:00Z", pix["expires_at"])
}

func TestDepositHandler_DepositRequiresPayerDocument(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/api/deposit", `{"amount": 10, "external_id": "dep-1", "payer": {"name": "Ana", "email": "ana@example.com"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []interface{}{"payer.document"}, decode(t, rec)["required"])
}

func TestDepositHandler_DepositRequiresExternalID(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/api/deposit", `{"payer": {"name": "Ana", "email": "ana@example.com", "document": "12345678901"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "missing required fields", body["error"])
	assert.Equal(t, []interface{}{"amount", "external_id"}, body["required"])
}

func TestDepositHandler_DepositEchoesProviderStatus(t *testing.T) {
	cases := map[string]struct {
		providerStatus string
		status         domain.TransactionStatus
		want           string
	}{
		"provider token":  {"PENDING", domain.StatusPending, "PENDING"},
		"no token":        {"", domain.StatusPending, "PENDING"},
		"no token, paid":  {"", domain.StatusPaid, "paid"},
		"lowercase token": {"waiting_payment", domain.StatusWaitingPayment, "waiting_payment"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newHandlerFixture(t)
			tx := sampleTx()
			tx.Status = tc.status
			tx.ProviderStatus = tc.providerStatus
			f.transactions.EXPECT().CreateTransaction(mock.Anything, mock.Anything).Return(tx, nil).Once()

			rec := f.do(http.MethodPost, "/api/deposit", `{
				"amount": 10,
				"external_id": "dep-1",
				"payer": {"name": "Ana Souza", "email": "ana@example.com", "document": "12345678901"}
			}`)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, decode(t, rec)["status"])
		})
	}
}

func TestDepositHandler_CreatePix(t *testing.T) {
	f := newHandlerFixture(t)
	tx := sampleTx()
	tx.Status = domain.StatusWaitingPayment
	f.transactions.EXPECT().CreateTransaction(mock.Anything, mock.Anything).Return(tx, nil).Once()

	rec := f.do(http.MethodPost, "/api/pix/create", `{
		"amount": 49.90,
		"description": "unlock",
		"customer_name": "Ana Souza",
		"customer_email": "ana@example.com",
		"customer_document": "123.456.789-01"
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "00020126...6304ABCD", body["qr_code"])
}

func TestCashoutHandler_Create(t *testing.T) {
	f := newHandlerFixture(t)
	f.transactions.EXPECT().
		CreateCashout(mock.Anything, mock.MatchedBy(func(req domain.CashoutRequest) bool {
			return req.KeyType == domain.PixKeyEmail && req.PixKey == "ana@example.com" && req.ExternalID == "co-ref-1"
		})).
		Return(&domain.Ack{ID: "co_1", Status: "PENDING"}, nil).Once()

	rec := f.do(http.MethodPost, "/api/cashout", `{"amount": 25, "external_id": "co-ref-1", "pix_key": "ana@example.com", "key_type": "EMAIL"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "co_1", body["data"].(map[string]interface{})["id"])
}

func TestCashoutHandler_MissingFields(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/api/cashout", `{"description": "payout"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.ElementsMatch(t, []interface{}{"amount", "external_id", "pix_key", "key_type"}, decode(t, rec)["required"])
}

func TestCashoutHandler_InvalidKeyType(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/api/cashout", `{"amount": 25, "external_id": "co-ref-1", "pix_key": "abc", "key_type": "RANDOM"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "invalid fields", body["error"])
	assert.Equal(t, []interface{}{"key_type"}, body["required"])
}

func TestWebhookHandler_AlwaysOK(t *testing.T) {
	cases := map[string]struct {
		body      string
		ingestErr error
	}{
		"well formed":   {`{"transaction_id":"tx_1","status":"PAID","net_amount":1}`, nil},
		"malformed":     {`{not json`, nil},
		"publish error": {`{"id":"tx_1"}`, errors.New("bus closed")},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.webhooks.EXPECT().Ingest(mock.Anything, "keyclub", []byte(tc.body), "203.0.113.7").
				Return(&domain.WebhookRecord{}, tc.ingestErr).Once()

			rec := f.do(http.MethodPost, "/api/webhook/keyclub", tc.body, "X-Forwarded-For", "203.0.113.7, 10.0.0.1")

			assert.Equal(t, http.StatusOK, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, true, body["success"])
			assert.Equal(t, true, body["received"])
			assert.NotEmpty(t, body["processed_at"])
		})
	}
}

func TestWebhookHandler_RealIPFallback(t *testing.T) {
	f := newHandlerFixture(t)
	f.webhooks.EXPECT().Ingest(mock.Anything, "podpay", mock.Anything, "198.51.100.2").
		Return(&domain.WebhookRecord{}, nil).Once()

	rec := f.do(http.MethodPost, "/api/webhook/podpay", `{}`, "X-Real-IP", "198.51.100.2")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthHandler_Check(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "podpay", body["provider"])
	assert.Equal(t, true, body["provider_configured"])
}

func TestRegisterValidations_ReportsBadTag(t *testing.T) {
	err := registerValidations(validator.New(), map[string]validator.Func{"": validateDocument})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "register")
}
