package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// RedisClient keeps JSON-encoded values of one type under a shared key
// prefix. Every write carries the same TTL.
type RedisClient[T any] struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
	logger zerolog.Logger
}

func NewRedisClient[T any](rdb redis.Cmdable, prefix string, ttl time.Duration, logger zerolog.Logger) *RedisClient[T] {
	return &RedisClient[T]{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With().Str("component", "RedisCache").Str("prefix", prefix).Logger(),
	}
}

func (c *RedisClient[T]) Set(ctx context.Context, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

//nolint:ireturn
func (c *RedisClient[T]) Get(ctx context.Context, key string) (T, error) {
	var value T

	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return value, ErrMiss
	case err != nil:
		return value, fmt.Errorf("redis get: %w", err)
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		// A stale shape from an older release reads as absent.
		c.logger.Warn().Ctx(ctx).Err(err).Msg("undecodable cache entry")
		return value, ErrMiss
	}
	return value, nil
}
