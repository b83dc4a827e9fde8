// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cardbound/deal/internal/store"
)

// DefaultQueueName is the Redis list that receives committed move records.
const DefaultQueueName = "deal_moves"

// DefaultSnapshotTTL bounds how long a cached game snapshot is served before
// falling back to the store.
const DefaultSnapshotTTL = 30 * time.Second

// ErrMiss means the snapshot is not cached.
var ErrMiss = errors.New("cache: miss")

// MoveRecord is the history entry pushed for every committed move. A consumer
// can replay a game from these plus the initial record.
type MoveRecord struct {
	ID        uuid.UUID       `json:"id"`
	GameID    string          `json:"game_id"`
	Version   int64           `json:"version"` // version the move committed as
	PlayerID  string          `json:"player_id"`
	Move      json.RawMessage `json:"move"`
	Timestamp int64           `json:"timestamp"`
}

// Cache wraps an injected Redis client. A nil *Cache is valid and turns every
// operation into a no-op, so callers need no branching when Redis is not
// configured.
type Cache struct {
	rdb   *redis.Client
	queue string
	ttl   time.Duration
}

// New builds a Cache over rdb. Empty queue and zero ttl take the defaults.
func New(rdb *redis.Client, queue string, ttl time.Duration) *Cache {
	if queue == "" {
		queue = DefaultQueueName
	}
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &Cache{rdb: rdb, queue: queue, ttl: ttl}
}

// Connect dials Redis at addr and verifies the connection.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// PublishMove pushes a committed move record onto the history queue.
func (c *Cache) PublishMove(ctx context.Context, rec MoveRecord) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal move record: %w", err)
	}
	if err := c.rdb.RPush(ctx, c.queue, data).Err(); err != nil {
		return fmt.Errorf("rpush to %q: %w", c.queue, err)
	}
	return nil
}

// SetSnapshot caches the latest committed record for a game.
func (c *Cache) SetSnapshot(ctx context.Context, rec *store.Record) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", rec.ID, err)
	}
	if err := c.rdb.Set(ctx, snapshotKey(rec.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot %s: %w", rec.ID, err)
	}
	return nil
}

// GetSnapshot returns the cached record for a game, or ErrMiss.
func (c *Cache) GetSnapshot(ctx context.Context, gameID string) (*store.Record, error) {
	if c == nil {
		return nil, ErrMiss
	}
	data, err := c.rdb.Get(ctx, snapshotKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", gameID, err)
	}
	rec := &store.Record{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", gameID, err)
	}
	return rec, nil
}

// Invalidate drops any cached snapshot for a game.
func (c *Cache) Invalidate(ctx context.Context, gameID string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, snapshotKey(gameID)).Err()
}

func snapshotKey(gameID string) string {
	return "deal:game:" + gameID
}
