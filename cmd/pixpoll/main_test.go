package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeRelay(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var polls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		assert.Regexp(t, `^REF-[0-9A-F]{12}$`, body["external_id"])
		if body["customer"].(map[string]interface{})["document"].(map[string]interface{})["number"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"hasError":true,"error":"missing required fields"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"tx_1","status":"pending","amount":"25.00","pixPayload":"000201"}}`))
	})
	mux.HandleFunc("/api/transactions/tx_1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&polls, 1) < 2 {
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":"tx_1","status":"pending"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"tx_1","status":"paid"}}`))
	})
	mux.HandleFunc("/api/cashout", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		if body["external_id"] == "" || body["external_id"] == nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"hasError":true,"error":"missing required fields"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"co_1","status":"processing"},"message":"cashout requested"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &polls
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRelayClient_CreateTransaction(t *testing.T) {
	srv, _ := fakeRelay(t)
	client := newRelayClient(srv.URL)

	var req createRequest
	req.Amount = decimal.RequireFromString("25.00")
	req.Customer.Document.Number = "12345678901"

	tx, err := client.createTransaction(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "tx_1", tx.ID)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("25")))

	req.Customer.Document.Number = ""
	_, err = client.createTransaction(context.Background(), req)
	assert.ErrorContains(t, err, "relay returned 400: missing required fields")
}

func TestCLI_CreateWatchAndCashout(t *testing.T) {
	srv, polls := fakeRelay(t)

	out, err := runCLI(t, "create",
		"--base-url", srv.URL,
		"--interval", "10ms",
		"--timeout", "2s",
		"--log-level", "error",
		"--amount", "25.00",
		"--document", "123.456.789-01",
		"--watch",
		"--cashout-key", "ana@example.com",
		"--cashout-key", "ana@example.com",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Transaction: tx_1")
	assert.Contains(t, out, "Paid (paid)")
	assert.Contains(t, out, "Cashout to ana@example.com requested: co_1")
	assert.Contains(t, out, "Skipping ana@example.com: already used in this session")
	assert.GreaterOrEqual(t, atomic.LoadInt32(polls), int32(2))
}

func TestCLI_WatchTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"status":"waiting_payment"}}`))
	}))
	defer srv.Close()

	_, err := runCLI(t, "watch", "tx_9",
		"--base-url", srv.URL,
		"--interval", "10ms",
		"--timeout", "60ms",
		"--log-level", "error",
	)
	assert.ErrorContains(t, err, `not paid within 60ms (last status "waiting_payment")`)
}

func TestCLI_Cashout(t *testing.T) {
	srv, _ := fakeRelay(t)

	out, err := runCLI(t, "cashout", "--base-url", srv.URL, "--amount", "10", "--pix-key", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Cashout requested: id=co_1 status=processing")
}
