package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultStatusPath = "/api/transactions/{id}"

// HTTPStatusFetcher reads a transaction status from a running relay.
type HTTPStatusFetcher struct {
	baseURL    string
	statusPath string
	client     *http.Client
}

func NewHTTPStatusFetcher(baseURL, statusPath string, client *http.Client) *HTTPStatusFetcher {
	if statusPath == "" {
		statusPath = DefaultStatusPath
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPStatusFetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		statusPath: statusPath,
		client:     client,
	}
}

type statusEnvelope struct {
	Status string `json:"status"`
	Data   *struct {
		Status string `json:"status"`
	} `json:"data"`
}

// FetchStatus accepts both the {success, data:{status}} transaction
// envelope and the bare status snapshot.
func (f *HTTPStatusFetcher) FetchStatus(ctx context.Context, id string) (string, error) {
	path := strings.ReplaceAll(f.statusPath, "{id}", url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("status request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read status response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("status request returned %d", resp.StatusCode)
	}

	var env statusEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("decode status response: %w", err)
	}
	if env.Data != nil && env.Data.Status != "" {
		return env.Data.Status, nil
	}
	if env.Status != "" {
		return env.Status, nil
	}
	return "", fmt.Errorf("status response carries no status")
}
