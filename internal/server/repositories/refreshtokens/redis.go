// Package refreshtokens provides a Redis-backed repository for refresh
// token records used in the server's authentication flow.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/cache"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

const keyPrefix = "refresh_token:"

// RedisRepository stores refresh token records as TTL-scoped cache entries,
// so revocation of expired records needs no background sweeper.
type RedisRepository struct {
	cache *cache.Cache
}

// NewRedisRepository constructs a repository bound to the given cache.
func NewRedisRepository(c *cache.Cache) *RedisRepository {
	return &RedisRepository{cache: c}
}

// Create stores a record binding token to userID for the given validity.
func (r *RedisRepository) Create(ctx context.Context, token string, userID string, validity time.Duration) error {
	return r.cache.Set(ctx, keyPrefix+token, userID, validity)
}

// Find returns the record for the given token, or common.ErrorNotFound.
func (r *RedisRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	userID, err := r.cache.Get(ctx, keyPrefix+token)
	if err != nil {
		return nil, err
	}
	return &models.RefreshToken{Token: token, UserID: userID}, nil
}

// Delete revokes the record for the given token.
func (r *RedisRepository) Delete(ctx context.Context, token string) error {
	return r.cache.Delete(ctx, keyPrefix+token)
}
