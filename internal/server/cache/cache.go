// Package cache wraps a Redis client with the small set of operations the
// token store needs. Key naming is owned by the callers; this package only
// talks TTLs and values.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
)

const dialCheckTimeout = 5 * time.Second

// Cache is a thin wrapper around redis.Client.
type Cache struct {
	client *redis.Client
}

// New connects to Redis using the configured address, credentials, DB index
// and pool size, and verifies the connection with a ping.
func New(cfg *config.Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		PoolSize: cfg.RedisPoolSize,
	})

	c := NewWithClient(client)

	ctx, cancel := context.WithTimeout(context.Background(), dialCheckTimeout)
	defer cancel()

	if err := c.Health(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return c, nil
}

// NewWithClient wraps an existing client. Used by tests.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("error setting key: %w", err)
	}
	return nil
}

// Get returns the value stored under key. A missing or expired key is
// reported as common.ErrorNotFound.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error getting key: %w", err)
	}
	return val, nil
}

// GetDel atomically returns the value stored under key and deletes it.
// A missing or expired key is reported as common.ErrorNotFound.
func (c *Cache) GetDel(ctx context.Context, key string) (string, error) {
	val, err := c.client.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error consuming key: %w", err)
	}
	return val, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting key: %w", err)
	}
	return nil
}

// IncrementWithTTL atomically increments the counter under key and returns
// the new value. The TTL is attached only when the key has none yet, so one
// window keeps a single deadline no matter how many increments land in it.
func (c *Cache) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()

	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("error incrementing key: %w", err)
	}

	return incr.Val(), nil
}

// Health pings the server.
func (c *Cache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client's connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
