package clock

import (
	"sort"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
	NewTimer(d time.Duration) Timer
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

type realClock struct{}

func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

func (realClock) NewTimer(d time.Duration) Timer {
	return &realTimer{t: time.NewTimer(d)}
}

type realTicker struct{ t *time.Ticker }

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

type realTimer struct{ t *time.Timer }

func (r *realTimer) C() <-chan time.Time { return r.t.C }
func (r *realTimer) Stop() bool          { return r.t.Stop() }

// Manual is a Clock that only moves when Advance is called. Tickers and
// timers fire synchronously inside Advance; channel sends never block, so a
// slow receiver drops ticks the same way time.Ticker does.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	waiters []*manualWaiter
}

type manualWaiter struct {
	clock    *Manual
	ch       chan time.Time
	next     time.Time
	interval time.Duration
	stopped  bool
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) NewTicker(d time.Duration) Ticker {
	return manualTicker{m.add(d, d)}
}

func (m *Manual) NewTimer(d time.Duration) Timer {
	return m.add(d, 0)
}

func (m *Manual) add(d, interval time.Duration) *manualWaiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := &manualWaiter{
		clock:    m,
		ch:       make(chan time.Time, 1),
		next:     m.now.Add(d),
		interval: interval,
	}
	m.waiters = append(m.waiters, w)
	return w
}

// Active reports how many tickers and timers are still armed.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, w := range m.waiters {
		if !w.stopped {
			n++
		}
	}
	return n
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := m.now.Add(d)
	for {
		due := m.dueWaiters(target)
		if len(due) == 0 {
			break
		}
		w := due[0]
		m.now = w.next
		select {
		case w.ch <- m.now:
		default:
		}
		if w.interval > 0 {
			w.next = w.next.Add(w.interval)
		} else {
			w.stopped = true
		}
	}
	m.now = target
	m.compact()
}

func (m *Manual) dueWaiters(target time.Time) []*manualWaiter {
	var due []*manualWaiter
	for _, w := range m.waiters {
		if !w.stopped && !w.next.After(target) {
			due = append(due, w)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].next.Before(due[j].next) })
	return due
}

func (m *Manual) compact() {
	live := m.waiters[:0]
	for _, w := range m.waiters {
		if !w.stopped {
			live = append(live, w)
		}
	}
	m.waiters = live
}

type manualTicker struct {
	*manualWaiter
}

func (t manualTicker) Stop() { t.manualWaiter.Stop() }

func (w *manualWaiter) C() <-chan time.Time { return w.ch }

func (w *manualWaiter) Stop() bool {
	w.clock.mu.Lock()
	defer w.clock.mu.Unlock()

	wasActive := !w.stopped
	w.stopped = true
	return wasActive
}
