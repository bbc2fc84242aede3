// Package resettokens provides a Redis-backed repository for single-use
// password reset tokens.
package resettokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/cache"
)

const keyPrefix = "reset_token:"

// RedisRepository stores reset tokens as TTL-scoped cache entries.
type RedisRepository struct {
	cache *cache.Cache
}

// NewRedisRepository constructs a repository bound to the given cache.
func NewRedisRepository(c *cache.Cache) *RedisRepository {
	return &RedisRepository{cache: c}
}

// Create stores a reset token for userID with the given validity.
func (r *RedisRepository) Create(ctx context.Context, token string, userID string, validity time.Duration) error {
	return r.cache.Set(ctx, keyPrefix+token, userID, validity)
}

// Consume resolves and invalidates token in one round trip, so concurrent
// resets with the same token cannot both succeed.
func (r *RedisRepository) Consume(ctx context.Context, token string) (string, error) {
	return r.cache.GetDel(ctx, keyPrefix+token)
}
