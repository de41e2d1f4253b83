package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/mocks"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var serviceNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTransactionService(t *testing.T) (TransactionService, *mocks.MockPaymentProvider) {
	t.Helper()
	provider := mocks.NewMockPaymentProvider(t)
	provider.EXPECT().Name().Return("podpay").Maybe()

	svc := NewTransactionService(provider, clock.NewManual(serviceNow), TransactionConfig{
		PixExpiry:   30 * time.Minute,
		CallbackURL: "https://relay.example.com/api/webhook/podpay",
	}, logger.NewNop())
	return svc, provider
}

func validCreateRequest() domain.CreateTransactionRequest {
	return domain.CreateTransactionRequest{
		Amount:      decimal.RequireFromString("49.90"),
		Description: "Balance unlock",
		Customer: domain.Customer{
			Name:     "Ana Souza",
			Email:    "ana@example.com",
			Document: domain.Document{Number: "123.456.789-01"},
		},
	}
}

func TestNewTransactionService(t *testing.T) {
	svc, _ := newTransactionService(t)

	assert.NotNil(t, svc)
	assert.Implements(t, (*TransactionService)(nil), svc)
}

func TestNewExternalRef(t *testing.T) {
	ref := NewExternalRef()

	assert.Regexp(t, regexp.MustCompile(`^REF-[0-9A-F]{12}$`), ref)
	assert.NotEqual(t, ref, NewExternalRef())
}

func TestCreateTransaction_Success(t *testing.T) {
	svc, provider := newTransactionService(t)

	provider.EXPECT().
		CreateTransaction(mock.Anything, mock.MatchedBy(func(req domain.CreateTransactionRequest) bool {
			return len(req.ExternalID) == 16 &&
				req.Currency == domain.CurrencyBRL &&
				req.PixExpiry == 30*time.Minute &&
				req.PostbackURL == "https://relay.example.com/api/webhook/podpay" &&
				req.Customer.Document.Type == domain.DocumentTypeCPF
		})).
		Return(&domain.Transaction{ID: "tx_1", Status: domain.StatusPending, PixPayload: "000201"}, nil).
		Once()

	tx, err := svc.CreateTransaction(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "tx_1", tx.ID)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("49.90")), "request amount fills a zero provider amount")
	assert.Equal(t, serviceNow, tx.CreatedAt)
	assert.Equal(t, serviceNow.Add(30*time.Minute), tx.ExpiresAt)
	assert.Equal(t, domain.PaymentMethodPix, tx.PaymentMethod)
	assert.NotEmpty(t, tx.ExternalID)
}

func TestCreateTransaction_KeepsProviderValues(t *testing.T) {
	svc, provider := newTransactionService(t)
	expires := serviceNow.Add(10 * time.Minute)

	provider.EXPECT().CreateTransaction(mock.Anything, mock.Anything).
		Return(&domain.Transaction{ID: "tx_1", Amount: decimal.RequireFromString("50.00"), ExpiresAt: expires, ExternalID: "EXT"}, nil).
		Once()

	req := validCreateRequest()
	req.ExternalID = "MY-REF"
	tx, err := svc.CreateTransaction(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "50", tx.Amount.String())
	assert.Equal(t, expires, tx.ExpiresAt)
	assert.Equal(t, "EXT", tx.ExternalID)
}

func TestCreateTransaction_Validation(t *testing.T) {
	cases := map[string]struct {
		mutate func(*domain.CreateTransactionRequest)
		field  string
	}{
		"zero amount":     {func(r *domain.CreateTransactionRequest) { r.Amount = decimal.Zero }, "amount"},
		"negative amount": {func(r *domain.CreateTransactionRequest) { r.Amount = decimal.NewFromInt(-1) }, "amount"},
		"no document":     {func(r *domain.CreateTransactionRequest) { r.Customer.Document.Number = "" }, "customer.document.number"},
		"short document":  {func(r *domain.CreateTransactionRequest) { r.Customer.Document.Number = "1234" }, "customer.document.number"},
		"cnpj mismatch": {func(r *domain.CreateTransactionRequest) {
			r.Customer.Document.Type = domain.DocumentTypeCNPJ
		}, "customer.document.number"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _ := newTransactionService(t)
			req := validCreateRequest()
			tc.mutate(&req)

			_, err := svc.CreateTransaction(context.Background(), req)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateTransaction_ProviderError(t *testing.T) {
	svc, provider := newTransactionService(t)
	providerErr := &domain.ProviderError{Kind: domain.KindProviderAuth, Provider: "podpay", Op: "create_transaction", StatusCode: 403}

	provider.EXPECT().CreateTransaction(mock.Anything, mock.Anything).Return(nil, providerErr).Once()

	tx, err := svc.CreateTransaction(context.Background(), validCreateRequest())

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, domain.ErrProviderAuth)
}

func TestGetTransaction(t *testing.T) {
	svc, provider := newTransactionService(t)

	provider.EXPECT().GetTransaction(mock.Anything, "tx_1").
		Return(&domain.Transaction{ID: "tx_1", Status: domain.StatusPaid}, nil).Once()

	tx, err := svc.GetTransaction(context.Background(), " tx_1 ")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, tx.Status)

	_, err = svc.GetTransaction(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRefundTransaction(t *testing.T) {
	svc, provider := newTransactionService(t)
	partial := decimal.RequireFromString("10.00")

	provider.EXPECT().RefundTransaction(mock.Anything, "tx_1", &partial).
		Return(&domain.Ack{ID: "tx_1", Status: "refunded"}, nil).Once()

	ack, err := svc.RefundTransaction(context.Background(), "tx_1", &partial)
	require.NoError(t, err)
	assert.Equal(t, "refunded", ack.Status)

	negative := decimal.NewFromInt(-5)
	_, err = svc.RefundTransaction(context.Background(), "tx_1", &negative)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCancelTransfer_AuthErrorSurfaces(t *testing.T) {
	svc, provider := newTransactionService(t)

	provider.EXPECT().CancelTransfer(mock.Anything, "tr_1").
		Return(nil, &domain.ProviderError{Kind: domain.KindProviderAuth, Provider: "podpay", Op: "cancel_transfer", StatusCode: 403}).Once()

	_, err := svc.CancelTransfer(context.Background(), "tr_1")

	assert.ErrorIs(t, err, domain.ErrProviderAuth)
	assert.False(t, errors.Is(err, domain.ErrProviderRejected))
}

func TestCreateCashout(t *testing.T) {
	svc, provider := newTransactionService(t)

	provider.EXPECT().
		CreateCashout(mock.Anything, mock.MatchedBy(func(req domain.CashoutRequest) bool {
			return req.PixKey == "11987654321" &&
				req.KeyType == domain.PixKeyPhone &&
				req.CallbackURL == "https://relay.example.com/api/webhook/podpay" &&
				req.ExternalID == "REF-CO1"
		})).
		Return(&domain.Ack{ID: "co_1", ExternalID: "REF-CO1", Status: "PENDING"}, nil).
		Once()

	ack, err := svc.CreateCashout(context.Background(), domain.CashoutRequest{
		ExternalID: "REF-CO1",
		Amount:     decimal.RequireFromString("25.00"),
		PixKey:     "(11) 98765-4321",
		KeyType:    "phone",
	})

	require.NoError(t, err)
	assert.Equal(t, "co_1", ack.ID)
	assert.Equal(t, "REF-CO1", ack.ExternalID)
}

func TestCreateCashout_Validation(t *testing.T) {
	cases := map[string]struct {
		req   domain.CashoutRequest
		field string
	}{
		"missing everything":  {domain.CashoutRequest{}, "amount"},
		"missing external id": {domain.CashoutRequest{Amount: decimal.NewFromInt(1), PixKey: "ana@example.com", KeyType: domain.PixKeyEmail}, "external_id"},
		"unknown key type":    {domain.CashoutRequest{ExternalID: "REF-1", Amount: decimal.NewFromInt(1), PixKey: "x", KeyType: "RANDOM"}, "key_type"},
		"bad email":           {domain.CashoutRequest{ExternalID: "REF-1", Amount: decimal.NewFromInt(1), PixKey: "not-an-email", KeyType: domain.PixKeyEmail}, "pix_key"},
		"bad cpf":             {domain.CashoutRequest{ExternalID: "REF-1", Amount: decimal.NewFromInt(1), PixKey: "123", KeyType: domain.PixKeyCPF}, "pix_key"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _ := newTransactionService(t)

			_, err := svc.CreateCashout(context.Background(), tc.req)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}
