// Package models defines server-side data models persisted in the database.
package models

import (
	"database/sql"
	"time"
)

// User is an account row. PasswordHash holds the encoded Argon2id hash,
// never a raw password.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// Summary is the client-visible projection of a User. It never carries
// credential material.
type Summary struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// Summary returns the client-visible projection of u.
func (u *User) Summary() *Summary {
	return &Summary{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
