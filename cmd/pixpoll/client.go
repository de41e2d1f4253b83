package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// relayClient calls the relay's own HTTP surface.
type relayClient struct {
	baseURL string
	http    *http.Client
}

func newRelayClient(baseURL string) *relayClient {
	return &relayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type createdTransaction struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	PixPayload string          `json:"pixPayload"`
	ExpiresAt  time.Time       `json:"expiresAt"`
}

type relayEnvelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type createRequest struct {
	ExternalID string          `json:"external_id"`
	Amount     decimal.Decimal `json:"amount"`
	Customer struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Document struct {
			Number string `json:"number"`
		} `json:"document"`
	} `json:"customer"`
	Description string `json:"description,omitempty"`
}

type cashoutBody struct {
	ExternalID  string          `json:"external_id"`
	Amount      decimal.Decimal `json:"amount"`
	PixKey      string          `json:"pix_key"`
	KeyType     string          `json:"key_type"`
	Description string          `json:"description,omitempty"`
}

func (c *relayClient) createTransaction(ctx context.Context, req createRequest) (*createdTransaction, error) {
	var tx createdTransaction
	if err := c.post(ctx, "/api/transactions", req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *relayClient) cashout(ctx context.Context, req cashoutBody) (map[string]interface{}, error) {
	var ack map[string]interface{}
	if err := c.post(ctx, "/api/cashout", req, &ack); err != nil {
		return nil, err
	}
	return ack, nil
}

func (c *relayClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call relay: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env relayEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("relay returned %d with a non-JSON body", resp.StatusCode)
	}
	if resp.StatusCode >= 300 || !env.Success {
		if env.Error == "" {
			env.Error = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("relay returned %d: %s", resp.StatusCode, env.Error)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
