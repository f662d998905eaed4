package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisBackend keeps each value under prefix+key in Redis.
type RedisBackend struct {
	c      *redis.Client
	prefix string
}

// NewRedisBackend wraps c; every key is stored under prefix.
func NewRedisBackend(c *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{c: c, prefix: prefix}
}

func (r *RedisBackend) key(k string) string {
	return r.prefix + k
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.c.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if err := r.c.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// SetMany writes all values in a MULTI/EXEC block.
func (r *RedisBackend) SetMany(ctx context.Context, values map[string][]byte) error {
	_, err := r.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range sortedKeys(values) {
			p.Set(ctx, r.key(k), values[k], 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set %d keys: %w", len(values), err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.c.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (r *RedisBackend) Close() error {
	return r.c.Close()
}
