// Package cache holds the Redis client and the item read-through cache.
// Redis is optional: when REDIS_URL is empty no client is created and item
// reads go straight to the store.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PoolOptions tunes the connection pool on top of what the URL specifies.
type PoolOptions struct {
	Size         int
	MinIdle      int
	Retries      int
	DialTimeout  time.Duration
	IOTimeout    time.Duration
	PingDeadline time.Duration
}

// DefaultPoolOptions suits a single API or worker process.
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		Size:         10,
		MinIdle:      2,
		Retries:      3,
		DialTimeout:  5 * time.Second,
		IOTimeout:    3 * time.Second,
		PingDeadline: 2 * time.Second,
	}
}

func (p PoolOptions) apply(opts *redis.Options) {
	opts.PoolSize = p.Size
	opts.MinIdleConns = p.MinIdle
	opts.MaxRetries = p.Retries
	opts.DialTimeout = p.DialTimeout
	opts.ReadTimeout = p.IOTimeout
	opts.WriteTimeout = p.IOTimeout
	opts.PoolTimeout = p.IOTimeout + time.Second
}

// RedisClient owns the go-redis pool shared by the item cache and the
// session store.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to url and pings it before returning.
func NewRedisClient(ctx context.Context, url string, pool PoolOptions) (*RedisClient, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	pool.apply(opts)

	rdb := redis.NewClient(opts)
	rc := &RedisClient{client: rdb}

	pingCtx, cancel := context.WithTimeout(ctx, pool.PingDeadline)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rc, nil
}

// Ping satisfies httpx.HealthChecker.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the pool, e.g. for the Redis-backed session store.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
