package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefixRate     = "pixrelay:rate:"
	keyPrefixStatus   = "pixrelay:status:"
	keyPrefixEvent    = "pixrelay:event:"
	staleRetention    = 10 * time.Minute
	processedEventTTL = 24 * time.Hour
)

// RedisStore shares the status cache, rate windows and processed-event
// ledger between relay instances.
type RedisStore struct {
	client *redis.Client
	clock  clock.Clock
}

func NewRedisStore(client *redis.Client, clk clock.Clock) *RedisStore {
	if clk == nil {
		clk = clock.New()
	}
	return &RedisStore{client: client, clock: clk}
}

type redisSnapshot struct {
	Snapshot domain.StatusSnapshot `json:"snapshot"`
	StoredAt time.Time             `json:"stored_at"`
}

// Allow uses INCR with an expiry set on the first hit, a fixed window.
func (s *RedisStore) Allow(ctx context.Context, id string, limit int, window time.Duration) (bool, error) {
	key := keyPrefixRate + id

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate window: %w", err)
		}
	}

	return count <= int64(limit), nil
}

func (s *RedisStore) GetCached(ctx context.Context, id string, ttl time.Duration) (*domain.StatusSnapshot, bool, error) {
	entry, ok, err := s.load(ctx, id)
	if err != nil || !ok {
		return nil, false, err
	}
	if s.clock.Now().Sub(entry.StoredAt) >= ttl {
		return nil, false, nil
	}
	return &entry.Snapshot, true, nil
}

func (s *RedisStore) GetStale(ctx context.Context, id string) (*domain.StatusSnapshot, bool, error) {
	entry, ok, err := s.load(ctx, id)
	if err != nil || !ok {
		return nil, false, err
	}
	return &entry.Snapshot, true, nil
}

func (s *RedisStore) PutCached(ctx context.Context, id string, snapshot domain.StatusSnapshot) error {
	b, err := json.Marshal(redisSnapshot{Snapshot: snapshot, StoredAt: s.clock.Now()})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefixStatus+id, b, staleRetention).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// Sweep is a no-op: every key carries its own expiry.
func (s *RedisStore) Sweep(ctx context.Context, ttl time.Duration) error {
	return nil
}

func (s *RedisStore) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefixEvent+eventID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check event: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) MarkEventProcessed(ctx context.Context, eventID string) error {
	if err := s.client.Set(ctx, keyPrefixEvent+eventID, "1", processedEventTTL).Err(); err != nil {
		return fmt.Errorf("failed to mark event: %w", err)
	}
	return nil
}

func (s *RedisStore) load(ctx context.Context, id string) (*redisSnapshot, bool, error) {
	val, err := s.client.Get(ctx, keyPrefixStatus+id).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var entry redisSnapshot
	if err := json.Unmarshal(val, &entry); err != nil {
		return nil, false, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &entry, true, nil
}
