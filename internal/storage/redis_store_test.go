package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only when REDIS_TEST_ADDR is set.
func newTestRedisStore(t *testing.T) (*RedisStore, *clock.Manual) {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	clk := clock.NewManual(time.Now())
	return NewRedisStore(client, clk), clk
}

func TestRedisStore_Allow(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()
	id := "tx-" + uuid.New().String()

	for i := 0; i < 2; i++ {
		ok, err := store.Allow(ctx, id, 2, time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := store.Allow(ctx, id, 2, time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Eventually(t, func() bool {
		ok, err := store.Allow(ctx, id, 2, time.Second)
		return err == nil && ok
	}, 3*time.Second, 100*time.Millisecond)
}

func TestRedisStore_Cache(t *testing.T) {
	store, clk := newTestRedisStore(t)
	ctx := context.Background()
	id := "tx-" + uuid.New().String()

	_, ok, err := store.GetCached(ctx, id, 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	snap := domain.StatusSnapshot{ID: id, Status: "paid", Amount: "10.00"}
	require.NoError(t, store.PutCached(ctx, id, snap))

	got, ok, err := store.GetCached(ctx, id, 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "paid", got.Status)

	clk.Advance(31 * time.Second)
	_, ok, err = store.GetCached(ctx, id, 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	stale, ok, err := store.GetStale(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "paid", stale.Status)
}

func TestRedisStore_EventLedger(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()
	id := uuid.New().String()

	processed, err := store.IsEventProcessed(ctx, id)
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, store.MarkEventProcessed(ctx, id))

	processed, err = store.IsEventProcessed(ctx, id)
	require.NoError(t, err)
	assert.True(t, processed)
}
