package audit

import (
	"context"

	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/pkg/logger"
)

// Recorder persists one audit entry per webhook delivery.
type Recorder interface {
	Record(ctx context.Context, record domain.WebhookRecord) error
}

// LogRecorder writes audit entries as structured log lines.
type LogRecorder struct {
	logger *logger.Logger
}

func NewLogRecorder(log *logger.Logger) *LogRecorder {
	return &LogRecorder{logger: log}
}

func (r *LogRecorder) Record(ctx context.Context, record domain.WebhookRecord) error {
	ctx = logger.WithTransactionID(ctx, record.TransactionID)
	ctx = logger.WithProvider(ctx, record.Provider)

	fields := []interface{}{
		"event_id", record.EventID,
		"timestamp", record.Timestamp,
		"type", string(record.Type),
		"external_id", record.ExternalID,
		"status", record.Status,
		"amount", record.Amount,
		"source_ip", record.SourceIP,
		"processing_status", string(record.ProcessingStatus),
	}
	if record.Error != "" {
		fields = append(fields, "processing_error", record.Error)
		r.logger.Warn(ctx, "Webhook audit", fields...)
		return nil
	}

	r.logger.Info(ctx, "Webhook audit", fields...)
	return nil
}
