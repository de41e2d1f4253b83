package poller

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Handoff is the state carried from transaction creation into a polling
// session.
type Handoff struct {
	TransactionID string
	Amount        decimal.Decimal
	PixPayload    string
	ExpiresAt     time.Time
	UsedKeys      *KeyLedger
}

// KeyLedger flags PIX keys as used within one session.
type KeyLedger struct {
	mu   sync.Mutex
	used map[string]bool
}

func NewKeyLedger() *KeyLedger {
	return &KeyLedger{used: make(map[string]bool)}
}

// MarkUsed returns true the first time key is marked and false afterwards.
func (l *KeyLedger) MarkUsed(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.used[key] {
		return false
	}
	l.used[key] = true
	return true
}

func (l *KeyLedger) IsUsed(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used[key]
}
