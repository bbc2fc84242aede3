// Package refreshtokens declares the server-side repository contract for
// refresh token records.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh token records. Records are keyed by the token's jti claim.
type Repository interface {
	// Create stores a record binding token to userID for the given validity.
	Create(ctx context.Context, token string, userID string, validity time.Duration) error

	// Find looks up a record by token and returns its metadata.
	// An absent or expired record is reported as common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete revokes a record. Deleting a non-existent record is not an
	// error.
	Delete(ctx context.Context, token string) error
}
