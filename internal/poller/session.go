package poller

import (
	"context"
	"sync"
	"time"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/pkg/logger"
)

type State string

const (
	StateIdle      State = "idle"
	StatePolling   State = "polling"
	StateSucceeded State = "succeeded"
	StateTimedOut  State = "timed_out"
	StateStopped   State = "stopped"
)

func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateTimedOut || s == StateStopped
}

// StatusFetcher returns the raw status token of a transaction.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, id string) (string, error)
}

type Config struct {
	Interval time.Duration
	Timeout  time.Duration
}

// Result is handed to the success callback.
type Result struct {
	Handoff   Handoff
	RawStatus string
	Status    domain.TransactionStatus
	Polls     int
}

type fetchResult struct {
	raw string
	err error
}

// Session polls one transaction until it is paid, the deadline passes or it
// is stopped. Each tick starts one fetch without waiting for the previous
// one; fetches that resolve after the session ended are dropped.
type Session struct {
	handoff   Handoff
	fetcher   StatusFetcher
	clock     clock.Clock
	cfg       Config
	logger    *logger.Logger
	onSuccess func(Result)

	mu    sync.Mutex
	state State
	last  string
	polls int

	results  chan fetchResult
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	cancel   context.CancelFunc
}

func newSession(h Handoff, fetcher StatusFetcher, clk clock.Clock, cfg Config, log *logger.Logger, onSuccess func(Result)) *Session {
	return &Session{
		handoff:   h,
		fetcher:   fetcher,
		clock:     clk,
		cfg:       cfg,
		logger:    log,
		onSuccess: onSuccess,
		state:     StateIdle,
		results:   make(chan fetchResult),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// start arms the ticker and the deadline before returning, so a clock
// advanced right after start is observed.
func (s *Session) start(ctx context.Context) {
	ctx = logger.WithTransactionID(ctx, s.handoff.TransactionID)
	ctx, s.cancel = context.WithCancel(ctx)

	ticker := s.clock.NewTicker(s.cfg.Interval)
	deadline := s.clock.NewTimer(s.cfg.Timeout)
	s.setState(StatePolling)

	s.logger.Info(ctx, "Polling started",
		"interval", s.cfg.Interval.String(),
		"timeout", s.cfg.Timeout.String(),
	)

	go s.run(ctx, ticker, deadline)
}

func (s *Session) run(ctx context.Context, ticker clock.Ticker, deadline clock.Timer) {
	final := StateStopped
	var success *Result

	defer func() {
		ticker.Stop()
		deadline.Stop()
		s.cancel()
		s.setState(final)
		close(s.done)
		if success != nil && s.onSuccess != nil {
			s.onSuccess(*success)
		}
	}()

	for {
		select {
		case <-ticker.C():
			s.mu.Lock()
			s.polls++
			s.mu.Unlock()
			go s.fetch(ctx)

		case r := <-s.results:
			if r.err != nil {
				s.logger.Warn(ctx, "Status poll failed, will retry", "error", r.err)
				continue
			}
			s.mu.Lock()
			s.last = r.raw
			polls := s.polls
			s.mu.Unlock()

			status := domain.NormalizeStatus(r.raw)
			if !status.IsPaid() {
				s.logger.Debug(ctx, "Transaction not paid yet", "status", r.raw)
				continue
			}
			s.logger.Info(ctx, "Payment confirmed",
				"status", r.raw,
				"polls", polls,
			)
			final = StateSucceeded
			success = &Result{Handoff: s.handoff, RawStatus: r.raw, Status: status, Polls: polls}
			return

		case <-deadline.C():
			s.logger.Warn(ctx, "Polling timed out",
				"last_status", s.LastStatus(),
			)
			final = StateTimedOut
			return

		case <-s.stop:
			s.logger.Info(ctx, "Polling stopped")
			return
		}
	}
}

func (s *Session) fetch(ctx context.Context) {
	raw, err := s.fetcher.FetchStatus(ctx, s.handoff.TransactionID)
	select {
	case s.results <- fetchResult{raw: raw, err: err}:
	case <-s.done:
	}
}

// Stop tears the session down. It does not wait; use Done for that.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Done is closed once the session reached a terminal state and released
// its ticker and timer.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) LastStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Session) Handoff() Handoff {
	return s.handoff
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
