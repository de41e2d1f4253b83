package domain

import "strings"

type TransactionStatus string

const (
	StatusPending        TransactionStatus = "pending"
	StatusWaitingPayment TransactionStatus = "waiting_payment"
	StatusPaid           TransactionStatus = "paid"
	StatusRefused        TransactionStatus = "refused"
	StatusRefunded       TransactionStatus = "refunded"
	StatusHeld           TransactionStatus = "held"
	StatusError          TransactionStatus = "error"
	StatusUnknown        TransactionStatus = "unknown"
)

var statusTokens = map[string]TransactionStatus{
	"paid":            StatusPaid,
	"approved":        StatusPaid,
	"authorized":      StatusPaid,
	"completed":       StatusPaid,
	"confirmed":       StatusPaid,
	"waiting_payment": StatusWaitingPayment,
	"pending":         StatusPending,
	"processing":      StatusPending,
	"created":         StatusPending,
	"refused":         StatusRefused,
	"failed":          StatusRefused,
	"canceled":        StatusRefused,
	"cancelled":       StatusRefused,
	"expired":         StatusRefused,
	"refunded":        StatusRefunded,
	"chargedback":     StatusRefunded,
	"retido":          StatusHeld,
	"error":           StatusError,
}

// NormalizeStatus maps any provider vocabulary (paid, PAID, AUTHORIZED,
// approved, FAILED, RETIDO, ...) onto the internal status set.
func NormalizeStatus(token string) TransactionStatus {
	if s, ok := statusTokens[strings.ToLower(strings.TrimSpace(token))]; ok {
		return s
	}
	return StatusUnknown
}

func (s TransactionStatus) IsPaid() bool {
	return s == StatusPaid
}

func (s TransactionStatus) IsFailed() bool {
	return s == StatusRefused || s == StatusError
}

// IsTerminal reports statuses after which no further transition is expected.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusRefused, StatusRefunded:
		return true
	}
	return false
}
