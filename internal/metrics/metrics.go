package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pixrelay"

const (
	OutcomeSuccess     = "success"
	OutcomeAuth        = "auth"
	OutcomeRejected    = "rejected"
	OutcomeUnavailable = "unavailable"
)

const (
	LookupHit       = "hit"
	LookupMiss      = "miss"
	LookupLimited   = "limited"
	LookupStale     = "stale"
	LookupSynthetic = "synthetic"
)

const (
	EventPublished = "published"
	EventDropped   = "dropped"
	EventProcessed = "processed"
	EventRetried   = "retried"
	EventFailed    = "failed"
)

// Metrics holds the Prometheus collectors of the relay.
type Metrics struct {
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	ProviderRequests     *prometheus.CounterVec
	ProviderDuration     *prometheus.HistogramVec
	FallbackTransactions *prometheus.CounterVec
	StatusLookups        *prometheus.CounterVec
	Webhooks             *prometheus.CounterVec
	Events               *prometheus.CounterVec
}

// New registers every collector on reg. Tests pass a fresh
// prometheus.NewRegistry() so instances never collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ProviderRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_requests_total",
				Help:      "Total number of calls to payment providers",
			},
			[]string{"provider", "operation", "outcome"},
		),
		ProviderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_request_duration_seconds",
				Help:      "Payment provider call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider", "operation"},
		),
		FallbackTransactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fallback_transactions_total",
				Help:      "Synthetic transactions produced by the fallback policy",
			},
			[]string{"reason"},
		),
		StatusLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_lookups_total",
				Help:      "Status route lookups by result",
			},
			[]string{"result"},
		),
		Webhooks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhooks_total",
				Help:      "Provider webhook deliveries received",
			},
			[]string{"provider", "type"},
		),
		Events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bus_events_total",
				Help:      "Event bus deliveries by consumer and result",
			},
			[]string{"event_type", "consumer", "result"},
		),
	}
}

// NewNop returns collectors bound to a private registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
