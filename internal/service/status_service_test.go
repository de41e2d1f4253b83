package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/metrics"
	"github.com/grachmannico95/pix-relay/internal/storage"
	"github.com/grachmannico95/pix-relay/mocks"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statusFixture struct {
	svc      StatusService
	provider *mocks.MockPaymentProvider
	clock    *clock.Manual
	metrics  *metrics.Metrics
}

func newStatusFixture(t *testing.T) *statusFixture {
	t.Helper()
	clk := clock.NewManual(serviceNow)
	provider := mocks.NewMockPaymentProvider(t)
	m := metrics.New(prometheus.NewRegistry())

	svc := NewStatusService(provider, storage.NewMemoryStore(clk), StatusConfig{
		CacheTTL:   30 * time.Second,
		RateWindow: 60 * time.Second,
		RateLimit:  2,
	}, logger.NewNop(), m)

	return &statusFixture{svc: svc, provider: provider, clock: clk, metrics: m}
}

func pendingTx(id string) *domain.Transaction {
	return &domain.Transaction{
		ID:             id,
		Status:         domain.StatusPending,
		ProviderStatus: "waiting_payment",
		Amount:         decimal.RequireFromString("49.9"),
		PixPayload:     "000201",
	}
}

func TestCheckStatus_RateLimitAndReset(t *testing.T) {
	f := newStatusFixture(t)
	ctx := context.Background()

	f.provider.EXPECT().GetTransaction(mock.Anything, "tx_1").Return(pendingTx("tx_1"), nil).Twice()

	snap, err := f.svc.CheckStatus(ctx, "tx_1")
	require.NoError(t, err)
	assert.Equal(t, "49.90", snap.Amount)
	assert.Equal(t, "pending", snap.Status)

	// Second call inside the cache TTL is served from cache.
	f.clock.Advance(10 * time.Second)
	_, err = f.svc.CheckStatus(ctx, "tx_1")
	require.NoError(t, err)

	f.clock.Advance(10 * time.Second)
	_, err = f.svc.CheckStatus(ctx, "tx_1")
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	// 61s after the first call the window resets and the cache has expired.
	f.clock.Advance(41 * time.Second)
	_, err = f.svc.CheckStatus(ctx, "tx_1")
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.StatusLookups.WithLabelValues(metrics.LookupMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.StatusLookups.WithLabelValues(metrics.LookupHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.StatusLookups.WithLabelValues(metrics.LookupLimited)))
}

func TestCheckStatus_CacheTTL(t *testing.T) {
	f := newStatusFixture(t)
	ctx := context.Background()

	f.provider.EXPECT().GetTransaction(mock.Anything, "tx_1").Return(pendingTx("tx_1"), nil).Once()

	first, err := f.svc.CheckStatus(ctx, "tx_1")
	require.NoError(t, err)

	f.clock.Advance(29 * time.Second)
	second, err := f.svc.CheckStatus(ctx, "tx_1")
	require.NoError(t, err)
	assert.Equal(t, *first, *second)

	paid := pendingTx("tx_1")
	paid.Status = domain.StatusPaid
	f.provider.EXPECT().GetTransaction(mock.Anything, "tx_1").Return(paid, nil).Once()

	// Past the TTL, in a fresh window.
	f.clock.Advance(32 * time.Second)
	third, err := f.svc.CheckStatus(ctx, "tx_1")
	require.NoError(t, err)
	assert.Equal(t, "paid", third.Status)
}

func TestCheckStatus_ProviderThrottleServesStale(t *testing.T) {
	f := newStatusFixture(t)
	ctx := context.Background()
	throttled := &domain.ProviderError{Kind: domain.KindProviderRejected, Provider: "podpay", Op: "get_transaction", Reason: domain.ReasonHTTPStatus, StatusCode: 429}

	f.provider.EXPECT().GetTransaction(mock.Anything, "tx_1").Return(pendingTx("tx_1"), nil).Once()
	_, err := f.svc.CheckStatus(ctx, "tx_1")
	require.NoError(t, err)

	f.provider.EXPECT().GetTransaction(mock.Anything, "tx_1").Return(nil, throttled).Once()
	f.clock.Advance(45 * time.Second)

	snap, err := f.svc.CheckStatus(ctx, "tx_1")
	require.NoError(t, err)
	assert.Equal(t, "pending", snap.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.StatusLookups.WithLabelValues(metrics.LookupStale)))
}

func TestCheckStatus_ProviderThrottleWithoutSnapshot(t *testing.T) {
	f := newStatusFixture(t)
	throttled := &domain.ProviderError{Kind: domain.KindProviderRejected, Provider: "podpay", Op: "get_transaction", StatusCode: 429}

	f.provider.EXPECT().GetTransaction(mock.Anything, "tx_2").Return(nil, throttled).Once()

	_, err := f.svc.CheckStatus(context.Background(), "tx_2")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestCheckStatus_RealIDErrorIsNotSynthesized(t *testing.T) {
	f := newStatusFixture(t)
	unavailable := domain.NewUnavailable("podpay", "get_transaction", domain.ReasonTransport, errors.New("dial tcp"))

	f.provider.EXPECT().GetTransaction(mock.Anything, "tx_1").Return(nil, unavailable).Once()

	snap, err := f.svc.CheckStatus(context.Background(), "tx_1")
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestCheckStatus_SyntheticLookupMetric(t *testing.T) {
	f := newStatusFixture(t)
	id := fmt.Sprintf("demo-%d", serviceNow.UnixMilli())

	f.provider.EXPECT().GetTransaction(mock.Anything, id).Return(pendingTx(id), nil).Once()

	_, err := f.svc.CheckStatus(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.StatusLookups.WithLabelValues(metrics.LookupSynthetic)))
}

func TestCheckStatus_MissingID(t *testing.T) {
	f := newStatusFixture(t)

	_, err := f.svc.CheckStatus(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
