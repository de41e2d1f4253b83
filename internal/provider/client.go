package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/metrics"
	"github.com/grachmannico95/pix-relay/pkg/logger"
)

const (
	userAgent       = "pix-relay/1.0"
	maxResponseBody = 1 << 20
)

// apiClient is the HTTP plumbing shared by every adapter. It owns
// response classification so the adapters only deal with their payloads.
type apiClient struct {
	provider string
	baseURL  string
	http     *http.Client
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

type apiRequest struct {
	op      string
	method  string
	path    string
	body    interface{}
	headers map[string]string
}

func newAPIClient(provider, baseURL string, httpClient *http.Client, log *logger.Logger, m *metrics.Metrics) *apiClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &apiClient{
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		logger:   log,
		metrics:  m,
	}
}

// do sends r and decodes a 2xx JSON body into out (when non-nil).
// It returns the raw body alongside for adapters that keep it.
func (c *apiClient) do(ctx context.Context, r apiRequest, out interface{}) ([]byte, error) {
	ctx = logger.WithProvider(ctx, c.provider)
	start := time.Now()

	raw, err := c.send(ctx, r, out)

	c.metrics.ProviderDuration.WithLabelValues(c.provider, r.op).Observe(time.Since(start).Seconds())
	c.metrics.ProviderRequests.WithLabelValues(c.provider, r.op, outcomeOf(err)).Inc()

	return raw, err
}

func (c *apiClient) send(ctx context.Context, r apiRequest, out interface{}) ([]byte, error) {
	var payload []byte
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode request: %w", c.provider, r.op, err)
		}
		payload = b
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s %s: build request: %w", c.provider, r.op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug(ctx, "Provider request",
		"operation", r.op,
		"method", r.method,
		"path", r.path,
		"headers", logger.RedactHeaders(req.Header),
		"body", logger.RedactJSON(payload),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "Provider unreachable",
			"operation", r.op,
			"path", r.path,
			"error", err,
		)
		return nil, domain.NewUnavailable(c.provider, r.op, domain.ReasonTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, domain.NewUnavailable(c.provider, r.op, domain.ReasonTransport, err)
	}

	c.logger.Info(ctx, "Provider response",
		"operation", r.op,
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"body", logger.RedactJSON(body),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return body, &domain.ProviderError{
			Kind:       domain.KindProviderAuth,
			Provider:   c.provider,
			Op:         r.op,
			StatusCode: resp.StatusCode,
			Body:       truncate(body),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return body, &domain.ProviderError{
			Kind:       domain.KindProviderRejected,
			Provider:   c.provider,
			Op:         r.op,
			Reason:     domain.ReasonHTTPStatus,
			StatusCode: resp.StatusCode,
			Body:       truncate(body),
		}
	}

	// An empty 2xx is an acknowledgement; callers that need fields
	// report them missing on their own.
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return body, nil
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		return body, &domain.ProviderError{
			Kind:       domain.KindProviderUnavailable,
			Provider:   c.provider,
			Op:         r.op,
			Reason:     domain.ReasonNonJSON,
			StatusCode: resp.StatusCode,
			Body:       truncate(body),
		}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return body, &domain.ProviderError{
				Kind:       domain.KindProviderUnavailable,
				Provider:   c.provider,
				Op:         r.op,
				Reason:     domain.ReasonDecode,
				StatusCode: resp.StatusCode,
				Body:       truncate(body),
				Err:        err,
			}
		}
	}

	return body, nil
}

func (c *apiClient) missingID(op string, body []byte) error {
	return &domain.ProviderError{
		Kind:     domain.KindProviderUnavailable,
		Provider: c.provider,
		Op:       op,
		Reason:   domain.ReasonMissingID,
		Body:     truncate(body),
	}
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func truncate(body []byte) string {
	const limit = 2048
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	pe, ok := domain.AsProviderError(err)
	if !ok {
		return metrics.OutcomeUnavailable
	}
	switch pe.Kind {
	case domain.KindProviderAuth:
		return metrics.OutcomeAuth
	case domain.KindProviderRejected:
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeUnavailable
	}
}

// rawMap decodes body into a generic map for Ack.Raw; failures yield nil.
func rawMap(body []byte) map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		return nil
	}
	return m
}

// flexString accepts JSON strings and numbers, since providers are not
// consistent about id and status types.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func notConfigured(provider, op string) error {
	return domain.NewUnavailable(provider, op, domain.ReasonNotConfigured, nil)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
