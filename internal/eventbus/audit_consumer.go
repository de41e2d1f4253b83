package eventbus

import (
	"context"
	"fmt"

	"github.com/grachmannico95/pix-relay/internal/audit"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/grachmannico95/pix-relay/pkg/retry"
)

// AuditConsumer writes each webhook delivery to the audit sink once.
type AuditConsumer struct {
	ledger      domain.EventLedger
	recorder    audit.Recorder
	logger      *logger.Logger
	workerCount int
}

func NewAuditConsumer(ledger domain.EventLedger, recorder audit.Recorder, log *logger.Logger, workerCount int) *AuditConsumer {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &AuditConsumer{
		ledger:      ledger,
		recorder:    recorder,
		logger:      log,
		workerCount: workerCount,
	}
}

func (ac *AuditConsumer) Consume(ctx context.Context, event Event) error {
	processed, err := ac.ledger.IsEventProcessed(ctx, event.ID)
	if err != nil {
		ac.logger.Error(ctx, "Failed to check event processed status",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	if processed {
		ac.logger.Debug(ctx, "Event already processed, skipping",
			"event_id", event.ID,
		)
		return nil
	}

	payload, ok := event.Payload.(WebhookReceivedEvent)
	if !ok {
		ac.logger.Error(ctx, "Invalid payload type for webhook event",
			"event_id", event.ID,
		)
		return retry.Permanent(fmt.Errorf("invalid payload type %T", event.Payload))
	}

	record := payload.Record
	if record.EventID == "" {
		record.EventID = event.ID
	}
	ctx = logger.WithTransactionID(ctx, record.TransactionID)

	if err := ac.recorder.Record(ctx, record); err != nil {
		ac.logger.Error(ctx, "Failed to record webhook audit entry",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	if err := ac.ledger.MarkEventProcessed(ctx, event.ID); err != nil {
		ac.logger.Error(ctx, "Failed to mark event as processed",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	ac.logger.Debug(ctx, "Webhook audit entry recorded",
		"event_id", event.ID,
		"type", string(record.Type),
	)

	return nil
}

func (ac *AuditConsumer) Name() string { return "audit" }

func (ac *AuditConsumer) GetWorkerCount() int {
	return ac.workerCount
}
