package eventbus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/grachmannico95/pix-relay/internal/metrics"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/grachmannico95/pix-relay/pkg/retry"
)

var ErrBusClosed = errors.New("event bus is shut down")

type EventBus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, consumer Consumer) error
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type Config struct {
	ChannelBuffer int
	MaxRetries    int

	// First backoff step between consume attempts; defaults to 1s.
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
}

// subscription is one consumer with its own queue, so every consumer of a
// type sees every event.
type subscription struct {
	eventType EventType
	consumer  Consumer
	queue     chan Event
}

type eventBus struct {
	subs    map[EventType][]*subscription
	mu      sync.RWMutex
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	logger  *logger.Logger
	metrics *metrics.Metrics
	cfg     Config
	started bool
	closed  bool
}

func New(log *logger.Logger, m *metrics.Metrics, cfg *Config) EventBus {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	if c.ChannelBuffer <= 0 {
		c.ChannelBuffer = 1000
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 5
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = time.Second
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = 30 * time.Second
	}
	if m == nil {
		m = metrics.NewNop()
	}

	return &eventBus{
		subs:    make(map[EventType][]*subscription),
		logger:  log,
		metrics: m,
		cfg:     c,
	}
}

func (eb *eventBus) Subscribe(eventType EventType, consumer Consumer) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.started || eb.closed {
		return errors.New("subscribe must happen before the event bus starts")
	}

	eb.subs[eventType] = append(eb.subs[eventType], &subscription{
		eventType: eventType,
		consumer:  consumer,
		queue:     make(chan Event, eb.cfg.ChannelBuffer),
	})

	return nil
}

func (eb *eventBus) Start(ctx context.Context) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return ErrBusClosed
	}
	if eb.started {
		return nil
	}

	var workerCtx context.Context
	workerCtx, eb.cancel = context.WithCancel(ctx)

	for eventType, subs := range eb.subs {
		for _, sub := range subs {
			workerCount := sub.consumer.GetWorkerCount()
			eb.logger.Info(workerCtx, "Starting workers",
				"event_type", eventType,
				"consumer", sub.consumer.Name(),
				"worker_count", workerCount,
			)

			for i := 0; i < workerCount; i++ {
				eb.wg.Add(1)
				go eb.worker(workerCtx, sub, i)
			}
		}
	}

	eb.started = true
	eb.logger.Info(workerCtx, "Event bus started")

	return nil
}

// worker drains its queue until the queue is closed by Shutdown or ctx is
// cancelled because the shutdown deadline passed.
func (eb *eventBus) worker(ctx context.Context, sub *subscription, workerID int) {
	defer eb.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sub.queue:
			if !ok {
				return
			}
			eb.deliver(ctx, sub, event, workerID)
		}
	}
}

func (eb *eventBus) deliver(ctx context.Context, sub *subscription, event Event, workerID int) {
	eventCtx := ctx
	if event.ID != "" {
		eventCtx = logger.WithTraceID(ctx, event.ID)
	}
	name := sub.consumer.Name()
	counter := func(result string) {
		eb.metrics.Events.WithLabelValues(string(event.Type), name, result).Inc()
	}

	err := retry.Do(eventCtx, func() error {
		return sub.consumer.Consume(eventCtx, event)
	},
		retry.WithMaxAttempts(eb.cfg.MaxRetries),
		retry.WithBaseDelay(eb.cfg.RetryBaseDelay),
		retry.WithMaxDelay(eb.cfg.RetryMaxDelay),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			counter(metrics.EventRetried)
			eb.logger.Warn(eventCtx, "Event delivery failed, retrying",
				"event_type", event.Type,
				"consumer", name,
				"attempt", attempt,
				"delay", delay.String(),
				"error", err,
			)
		}),
	)

	if err != nil {
		counter(metrics.EventFailed)
		eb.logger.Error(eventCtx, "Event delivery abandoned",
			"event_type", event.Type,
			"consumer", name,
			"worker_id", workerID,
			"error", err,
		)
		return
	}

	counter(metrics.EventProcessed)
	eb.logger.Debug(eventCtx, "Event delivered",
		"event_type", event.Type,
		"consumer", name,
		"worker_id", workerID,
	)
}

// Publish never blocks: a full queue drops the event for that consumer.
// The read lock is held across the sends so Shutdown cannot close a queue
// underneath them.
func (eb *eventBus) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return ErrBusClosed
	}

	subs := eb.subs[event.Type]
	if len(subs) == 0 {
		eb.logger.Warn(ctx, "No consumer for event type",
			"event_type", event.Type,
			"event_id", event.ID,
		)
		return nil
	}

	for _, sub := range subs {
		select {
		case sub.queue <- event:
			eb.metrics.Events.WithLabelValues(string(event.Type), sub.consumer.Name(), metrics.EventPublished).Inc()
		default:
			eb.metrics.Events.WithLabelValues(string(event.Type), sub.consumer.Name(), metrics.EventDropped).Inc()
			eb.logger.Warn(ctx, "Event queue full, event dropped",
				"event_type", event.Type,
				"event_id", event.ID,
				"consumer", sub.consumer.Name(),
			)
		}
	}

	return nil
}

// Shutdown stops accepting events and lets workers drain what is queued.
// When ctx ends first, in-flight deliveries are cancelled.
func (eb *eventBus) Shutdown(ctx context.Context) error {
	eb.logger.Info(ctx, "Shutting down event bus")

	eb.mu.Lock()
	if !eb.closed {
		eb.closed = true
		for _, subs := range eb.subs {
			for _, sub := range subs {
				close(sub.queue)
			}
		}
	}
	cancel := eb.cancel
	eb.mu.Unlock()

	done := make(chan struct{})
	go func() {
		eb.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if cancel != nil {
			cancel()
		}
		eb.logger.Info(ctx, "Event bus shutdown complete")
		return nil
	case <-ctx.Done():
		if cancel != nil {
			cancel()
		}
		eb.logger.Warn(ctx, "Event bus shutdown timeout, pending events abandoned")
		return ctx.Err()
	}
}
