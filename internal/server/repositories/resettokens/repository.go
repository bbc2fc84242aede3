// Package resettokens declares the server-side repository contract for
// password reset tokens.
package resettokens

import (
	"context"
	"time"
)

// Repository defines operations for single-use password reset tokens.
type Repository interface {
	// Create stores a reset token for userID with the given validity.
	Create(ctx context.Context, token string, userID string, validity time.Duration) error

	// Consume atomically resolves token to the user id it was issued for
	// and invalidates it. Each token resolves at most once; an absent,
	// expired or already-consumed token is reported as common.ErrorNotFound.
	Consume(ctx context.Context, token string) (string, error)
}
