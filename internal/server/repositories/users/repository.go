// Package users declares the server-side repository contract for account
// records.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository defines the persistence operations the auth flows need.
type Repository interface {
	// Create inserts a new account and returns it with the generated id and
	// timestamps filled in. A duplicate email is reported as
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the account with the given email, or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the account with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// EmailExists reports whether an account with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateLastLogin stamps the account's last_login_at with the current time.
	UpdateLastLogin(ctx context.Context, id string) error

	// UpdatePassword replaces the account's password hash. A missing account
	// is reported as common.ErrorNotFound.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
