package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/config"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLiraPay(t *testing.T, handler http.HandlerFunc) *LiraPay {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewLiraPay(config.LiraPayConfig{BaseURL: srv.URL, APISecret: "sk_test"}, srv.Client(), clock.NewManual(testNow), logger.NewNop(), nil)
}

func TestLiraPay_CreateTransaction(t *testing.T) {
	var got map[string]interface{}
	l := newTestLiraPay(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.Equal(t, "sk_test", r.Header.Get("api-secret"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		jsonResponse(w, http.StatusOK, `{"id":"lp_1","status":"PENDING","total_value":49.9,"pix":{"payload":"000201LP"},"hasError":false}`)
	})

	tx, err := l.CreateTransaction(context.Background(), sampleCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "lp_1", tx.ID)
	assert.Equal(t, "000201LP", tx.PixPayload)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("49.9")))

	assert.Equal(t, "PIX", got["payment_method"])
	assert.Equal(t, 49.9, got["total_amount"])
	customer := got["customer"].(map[string]interface{})
	assert.Equal(t, "cpf", customer["document_type"])
	assert.Equal(t, "12345678901", customer["document"])
}

func TestLiraPay_HasErrorIsRejected(t *testing.T) {
	l := newTestLiraPay(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, `{"hasError":true,"message":"invalid customer"}`)
	})

	_, err := l.CreateTransaction(context.Background(), sampleCreateRequest())
	assert.ErrorIs(t, err, domain.ErrProviderRejected)
}

func TestLiraPay_AuthorizedIsPaid(t *testing.T) {
	l := newTestLiraPay(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/lp_1", r.URL.Path)
		jsonResponse(w, http.StatusOK, `{"id":"lp_1","status":"AUTHORIZED","total_amount":"12.00"}`)
	})

	tx, err := l.GetTransaction(context.Background(), "lp_1")
	require.NoError(t, err)
	assert.True(t, tx.Status.IsPaid())
	assert.Equal(t, "AUTHORIZED", tx.ProviderStatus)
}

func TestLiraPay_UnsupportedOperations(t *testing.T) {
	l := NewLiraPay(config.LiraPayConfig{}, nil, clock.New(), logger.NewNop(), nil)

	_, err := l.RefundTransaction(context.Background(), "lp_1", nil)
	assert.ErrorIs(t, err, domain.ErrNotSupported)
	_, err = l.CancelTransfer(context.Background(), "lp_1")
	assert.ErrorIs(t, err, domain.ErrNotSupported)
	_, err = l.CreateCashout(context.Background(), domain.CashoutRequest{})
	assert.ErrorIs(t, err, domain.ErrNotSupported)
}

func TestNew_SelectsProvider(t *testing.T) {
	for _, name := range []string{config.ProviderPodPay, config.ProviderKeyClub, config.ProviderLiraPay} {
		p, err := New(config.ProviderConfig{Name: name}, clock.New(), logger.NewNop(), nil)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := New(config.ProviderConfig{Name: "stripe"}, clock.New(), logger.NewNop(), nil)
	assert.Error(t, err)
}
