package redis

import (
	"context"
	"time"

	"telegram-football-fixtures/internal/config"

	"github.com/go-redis/redis/v8"
)

// RedisClient is the slice of redis this bot uses: counters with expiry for
// rate limiting, byte blobs for prompt state, Ping for readiness.
type RedisClient interface {
	Ping(ctx context.Context) error
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Close() error
}

var _ RedisClient = (*client)(nil)

type client struct {
	rdb *redis.Client
}

// NewClient connects and verifies the connection before returning.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &client{rdb: rdb}, nil
}

func (c *client) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

func (c *client) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

func (c *client) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

func (c *client) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return c.rdb.Expire(ctx, key, expiration).Err()
}

func (c *client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *client) Close() error { return c.rdb.Close() }
