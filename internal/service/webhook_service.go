package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/eventbus"
	"github.com/grachmannico95/pix-relay/internal/metrics"
	"github.com/grachmannico95/pix-relay/pkg/logger"
)

const heldStatusToken = "RETIDO"

type WebhookService interface {
	Ingest(ctx context.Context, provider string, body []byte, sourceIP string) (*domain.WebhookRecord, error)
}

type webhookService struct {
	bus     eventbus.EventBus
	clock   clock.Clock
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewWebhookService(bus eventbus.EventBus, clk clock.Clock, log *logger.Logger, m *metrics.Metrics) WebhookService {
	if clk == nil {
		clk = clock.New()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &webhookService{
		bus:     bus,
		clock:   clk,
		logger:  log,
		metrics: m,
	}
}

// Ingest turns one callback body into an audit record and hands it to the
// bus. Malformed bodies still produce a record with ProcessingError.
func (s *webhookService) Ingest(ctx context.Context, provider string, body []byte, sourceIP string) (*domain.WebhookRecord, error) {
	record := ParseWebhook(body)
	record.EventID = uuid.New().String()
	record.Timestamp = s.clock.Now().UTC()
	record.Provider = provider
	record.SourceIP = sourceIP

	ctx = logger.WithProvider(ctx, provider)
	ctx = logger.WithTransactionID(ctx, record.TransactionID)

	if record.Type == domain.WebhookTypeMED {
		s.logger.Warn(ctx, "Webhook reports held transaction (MED)",
			"external_id", record.ExternalID,
		)
	}
	s.logger.Info(ctx, "Webhook received",
		"type", string(record.Type),
		"status", record.Status,
		"amount", record.Amount,
		"source_ip", sourceIP,
		"processing_status", string(record.ProcessingStatus),
	)
	s.metrics.Webhooks.WithLabelValues(provider, string(record.Type)).Inc()

	if err := s.bus.Publish(ctx, eventbus.NewWebhookEvent(record)); err != nil {
		s.logger.Error(ctx, "Failed to publish webhook event",
			"event_id", record.EventID,
			"error", err,
		)
		return &record, err
	}

	return &record, nil
}

// ParseWebhook extracts id, status and amount from a provider callback,
// accepting flat bodies and a {"data": {...}} envelope. Type is MED for the
// held status token, DEPOSIT when net_amount is present, else WITHDRAWAL.
func ParseWebhook(body []byte) domain.WebhookRecord {
	record := domain.WebhookRecord{
		Type:             domain.WebhookTypeWithdrawal,
		ProcessingStatus: domain.ProcessingSuccess,
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		record.ProcessingStatus = domain.ProcessingError
		record.Error = "invalid JSON body"
		return record
	}
	if data, ok := raw["data"].(map[string]interface{}); ok {
		raw = data
	}

	record.TransactionID = firstString(raw, "transaction_id", "id", "transactionId")
	record.ExternalID = firstString(raw, "external_id", "externalRef", "externalId")
	record.Status = firstString(raw, "status")
	record.Amount = firstString(raw, "amount", "total_amount", "total_value")

	_, hasNet := raw["net_amount"]
	switch {
	case strings.EqualFold(record.Status, heldStatusToken):
		record.Type = domain.WebhookTypeMED
	case hasNet:
		record.Type = domain.WebhookTypeDeposit
	}

	if record.TransactionID == "" {
		record.ProcessingStatus = domain.ProcessingError
		record.Error = "missing transaction id"
	}

	return record
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}
