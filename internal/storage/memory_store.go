package storage

import (
	"context"
	"sync"
	"time"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
)

type cachedSnapshot struct {
	snapshot domain.StatusSnapshot
	storedAt time.Time
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

// eventPruneInterval bounds how often MarkEventProcessed scans the ledger.
const eventPruneInterval = time.Hour

// MemoryStore is the single-process StatusStore and EventLedger. Processed
// event marks expire after the same retention RedisStore applies.
type MemoryStore struct {
	clock           clock.Clock
	snapshots       map[string]cachedSnapshot
	windows         map[string]*rateWindow
	processedEvents map[string]time.Time
	lastEventPrune  time.Time
	mu              sync.RWMutex
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	if clk == nil {
		clk = clock.New()
	}
	return &MemoryStore{
		clock:           clk,
		snapshots:       make(map[string]cachedSnapshot),
		windows:         make(map[string]*rateWindow),
		processedEvents: make(map[string]time.Time),
		lastEventPrune:  clk.Now(),
	}
}

// Allow counts one request for id in a fixed window starting at the first
// request; it refuses once limit requests were counted before resetAt.
func (s *MemoryStore) Allow(ctx context.Context, id string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	w, exists := s.windows[id]
	if !exists || !now.Before(w.resetAt) {
		s.windows[id] = &rateWindow{count: 1, resetAt: now.Add(window)}
		return true, nil
	}

	if w.count >= limit {
		return false, nil
	}
	w.count++

	return true, nil
}

func (s *MemoryStore) GetCached(ctx context.Context, id string, ttl time.Duration) (*domain.StatusSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.snapshots[id]
	if !exists || s.clock.Now().Sub(entry.storedAt) >= ttl {
		return nil, false, nil
	}

	snapshot := entry.snapshot
	return &snapshot, true, nil
}

// GetStale returns the last snapshot for id regardless of age.
func (s *MemoryStore) GetStale(ctx context.Context, id string) (*domain.StatusSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.snapshots[id]
	if !exists {
		return nil, false, nil
	}

	snapshot := entry.snapshot
	return &snapshot, true, nil
}

func (s *MemoryStore) PutCached(ctx context.Context, id string, snapshot domain.StatusSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[id] = cachedSnapshot{snapshot: snapshot, storedAt: s.clock.Now()}

	return nil
}

func (s *MemoryStore) Sweep(ctx context.Context, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for id, entry := range s.snapshots {
		if now.Sub(entry.storedAt) > 2*ttl {
			delete(s.snapshots, id)
		}
	}
	for id, w := range s.windows {
		if now.After(w.resetAt) {
			delete(s.windows, id)
		}
	}
	s.pruneEvents(now)

	return nil
}

func (s *MemoryStore) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	markedAt, ok := s.processedEvents[eventID]
	return ok && s.clock.Now().Sub(markedAt) < processedEventTTL, nil
}

func (s *MemoryStore) MarkEventProcessed(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.processedEvents[eventID] = now
	if now.Sub(s.lastEventPrune) >= eventPruneInterval {
		s.pruneEvents(now)
	}

	return nil
}

// pruneEvents drops marks older than processedEventTTL. Callers hold mu.
func (s *MemoryStore) pruneEvents(now time.Time) {
	for id, markedAt := range s.processedEvents {
		if now.Sub(markedAt) >= processedEventTTL {
			delete(s.processedEvents, id)
		}
	}
	s.lastEventPrune = now
}

// Size reports cached snapshots and live rate windows.
func (s *MemoryStore) Size() (snapshots, windows int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.snapshots), len(s.windows)
}

// EventCount reports processed-event marks still held.
func (s *MemoryStore) EventCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.processedEvents)
}
