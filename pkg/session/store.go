package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/example/wingkiosk/pkg/config"
)

// Store holds ordering-session start timestamps keyed by session key. The
// gate is the only writer; backends just persist timestamps with a TTL.
type Store interface {
	GetStart(ctx context.Context, key string) (time.Time, bool, error)
	SetStart(ctx context.Context, key string, start time.Time, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// KioskKey mints a fresh session key for a walk-up kiosk client.
func KioskKey() string {
	return "kiosk:" + uuid.NewString()
}

// TableKey builds the session key for a dine-in-via-QR table.
func TableKey(table string) string {
	return "table:" + table
}

const keyPrefix = "ordersession:%s"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg *config.RedisConfig) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) GetStart(ctx context.Context, key string) (time.Time, bool, error) {
	v, err := s.client.Get(ctx, fmt.Sprintf(keyPrefix, key)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	start, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, false, err
	}
	return start, true, nil
}

func (s *RedisStore) SetStart(ctx context.Context, key string, start time.Time, ttl time.Duration) error {
	return s.client.Set(ctx, fmt.Sprintf(keyPrefix, key), start.Format(time.RFC3339Nano), ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, fmt.Sprintf(keyPrefix, key)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore backs tests and single-node deployments without Redis.
type MemoryStore struct {
	starts map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{starts: make(map[string]time.Time)}
}

func (s *MemoryStore) GetStart(_ context.Context, key string) (time.Time, bool, error) {
	start, ok := s.starts[key]
	return start, ok, nil
}

func (s *MemoryStore) SetStart(_ context.Context, key string, start time.Time, _ time.Duration) error {
	s.starts[key] = start
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	delete(s.starts, key)
	return nil
}
