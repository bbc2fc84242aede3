// Package attempts tracks failed login attempts per identity inside a
// sliding lockout window.
package attempts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/cache"
)

const keyPrefix = "rate_limit:"

// Tracker counts failed attempts in the store. The counter self-expires
// after the window, which is what makes the window slide.
type Tracker struct {
	cache  *cache.Cache
	window time.Duration
}

// NewTracker constructs a tracker with the given lockout window.
func NewTracker(c *cache.Cache, window time.Duration) *Tracker {
	return &Tracker{cache: c, window: window}
}

// Track records one failed attempt for identity and returns the counter
// value in the current window. Concurrent calls each count exactly once.
func (t *Tracker) Track(ctx context.Context, identity string) (int64, error) {
	return t.cache.IncrementWithTTL(ctx, keyPrefix+identity, t.window)
}

// Count returns the number of failed attempts recorded for identity in the
// current window. An absent counter reads as zero.
func (t *Tracker) Count(ctx context.Context, identity string) (int64, error) {
	val, err := t.cache.Get(ctx, keyPrefix+identity)
	if errors.Is(err, common.ErrorNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed attempt counter: %w", err)
	}
	return n, nil
}

// Clear resets the counter for identity.
func (t *Tracker) Clear(ctx context.Context, identity string) error {
	return t.cache.Delete(ctx, keyPrefix+identity)
}
