package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/grachmannico95/pix-relay/internal/domain"

	_ "github.com/go-sql-driver/mysql"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS webhook_audit_log (
	id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	event_id VARCHAR(64) NOT NULL,
	received_at DATETIME(3) NOT NULL,
	provider VARCHAR(32) NOT NULL,
	type VARCHAR(16) NOT NULL,
	transaction_id VARCHAR(128) NOT NULL,
	external_id VARCHAR(128) NOT NULL DEFAULT '',
	status VARCHAR(64) NOT NULL DEFAULT '',
	amount VARCHAR(32) NOT NULL DEFAULT '',
	source_ip VARCHAR(64) NOT NULL DEFAULT '',
	processing_status VARCHAR(16) NOT NULL,
	error TEXT NULL,
	UNIQUE KEY uq_webhook_audit_event (event_id)
)`

const insertRecordSQL = `INSERT IGNORE INTO webhook_audit_log
	(event_id, received_at, provider, type, transaction_id, external_id, status, amount, source_ip, processing_status, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLRecorder stores audit entries in MySQL. Inserts ignore duplicate event
// ids so redelivered bus events write once.
type SQLRecorder struct {
	db *sql.DB
}

func NewSQLRecorder(db *sql.DB) *SQLRecorder {
	return &SQLRecorder{db: db}
}

// OpenMySQL opens and pings a pool for dsn.
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping audit database: %w", err)
	}
	return db, nil
}

func (r *SQLRecorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create audit table: %w", err)
	}
	return nil
}

func (r *SQLRecorder) Record(ctx context.Context, record domain.WebhookRecord) error {
	var errText sql.NullString
	if record.Error != "" {
		errText = sql.NullString{String: record.Error, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, insertRecordSQL,
		record.EventID,
		record.Timestamp.UTC(),
		record.Provider,
		string(record.Type),
		record.TransactionID,
		record.ExternalID,
		record.Status,
		record.Amount,
		record.SourceIP,
		string(record.ProcessingStatus),
		errText,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}
