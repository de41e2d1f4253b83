package poller

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/pkg/logger"
)

const (
	DefaultInterval = 5 * time.Second
	DefaultTimeout  = 10 * time.Minute
)

// Manager keeps at most one live Session per transaction id.
type Manager struct {
	fetcher  StatusFetcher
	clock    clock.Clock
	cfg      Config
	logger   *logger.Logger
	sessions map[string]*Session
	mu       sync.Mutex
}

func NewManager(fetcher StatusFetcher, clk clock.Clock, cfg Config, log *logger.Logger) *Manager {
	if clk == nil {
		clk = clock.New()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Manager{
		fetcher:  fetcher,
		clock:    clk,
		cfg:      cfg,
		logger:   log,
		sessions: make(map[string]*Session),
	}
}

// Start begins polling h.TransactionID. onSuccess runs at most once, after
// the session released its timers.
func (m *Manager) Start(ctx context.Context, h Handoff, onSuccess func(Result)) (*Session, error) {
	id := strings.TrimSpace(h.TransactionID)
	if id == "" {
		return nil, domain.NewValidationError("missing required fields", "transaction_id")
	}
	h.TransactionID = id
	if h.UsedKeys == nil {
		h.UsedKeys = NewKeyLedger()
	}

	m.mu.Lock()
	if existing, ok := m.sessions[id]; ok && !existing.State().Terminal() {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyPolling, id)
	}
	s := newSession(h, m.fetcher, m.clock, m.cfg, m.logger, onSuccess)
	m.sessions[id] = s
	m.mu.Unlock()

	s.start(ctx)
	go m.release(id, s)

	return s, nil
}

func (m *Manager) release(id string, s *Session) {
	<-s.Done()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[id] == s {
		delete(m.sessions, id)
	}
}

// Stop tears down the session for id, if any.
func (m *Manager) Stop(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return false
	}
	s.Stop()
	return true
}

// StopAll tears down every session and waits for them to finish.
func (m *Manager) StopAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
		<-s.Done()
	}
}

func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
