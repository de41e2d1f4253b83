package eventbus

import (
	"time"

	"github.com/grachmannico95/pix-relay/internal/domain"
)

type EventType string

const (
	EventTypeWebhookReceived EventType = "webhook_received"
)

type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type WebhookReceivedEvent struct {
	Record domain.WebhookRecord `json:"record"`
}

// NewWebhookEvent wraps an audit record; the record's EventID is the
// idempotency key downstream.
func NewWebhookEvent(record domain.WebhookRecord) Event {
	return Event{
		ID:        record.EventID,
		Type:      EventTypeWebhookReceived,
		Payload:   WebhookReceivedEvent{Record: record},
		Timestamp: record.Timestamp,
	}
}
