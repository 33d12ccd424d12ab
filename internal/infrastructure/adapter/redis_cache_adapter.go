package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCachePrefix = "aggregator:"

var ErrCacheMiss = errors.New("cache miss")

// CacheRecorder observes cache lookups. Result is one of hit, miss, stored or error.
type CacheRecorder interface {
	ObserveCache(operation, result string)
}

// RedisCacheAdapter stores hotel metadata documents under a service-wide key prefix.
type RedisCacheAdapter struct {
	client   redis.UniversalClient
	prefix   string
	recorder CacheRecorder
	logger   *slog.Logger
}

func NewRedisCacheAdapterWithClient(client redis.UniversalClient, prefix string, recorder CacheRecorder, logger *slog.Logger) *RedisCacheAdapter {
	if prefix == "" {
		prefix = defaultCachePrefix
	}
	return &RedisCacheAdapter{
		client:   client,
		prefix:   prefix,
		recorder: recorder,
		logger:   logger,
	}
}

func (r *RedisCacheAdapter) key(key string) string {
	return r.prefix + key
}

func (r *RedisCacheAdapter) observe(operation, result string) {
	if r.recorder != nil {
		r.recorder.ObserveCache(operation, result)
	}
}

// Get returns ErrCacheMiss when key is not present.
func (r *RedisCacheAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		r.observe("get", "miss")
		return nil, fmt.Errorf("%w for key %s", ErrCacheMiss, key)
	case err != nil:
		r.observe("get", "error")
		r.logger.Warn("Hotel cache read failed", "key", key, "error", err)
		return nil, fmt.Errorf("cache get error for key %s: %w", key, err)
	}

	r.observe("get", "hit")
	r.logger.Debug("Hotel cache hit", "key", key, "size", len(data))
	return data, nil
}

func (r *RedisCacheAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		r.observe("set", "error")
		return fmt.Errorf("cache set error for key %s: %w", key, err)
	}

	r.observe("set", "stored")
	r.logger.Debug("Hotel cache stored", "key", key, "ttl", ttl, "size", len(value))
	return nil
}

func (r *RedisCacheAdapter) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("cache delete error for key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCacheAdapter) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("cache exists error for key %s: %w", key, err)
	}
	return count > 0, nil
}

// TTL reports the remaining lifetime of a cached document, zero when it is absent.
func (r *RedisCacheAdapter) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, r.key(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("cache ttl error for key %s: %w", key, err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (r *RedisCacheAdapter) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisCacheAdapter) Close() error {
	return r.client.Close()
}
