package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
//
// Lookups other than GetPasswordHash return safe projections: the
// PasswordHash field is left empty so store results can be handed to
// client-facing code without an extra scrubbing step.
type UserStore interface {
	Exists(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, username, email, passwordHash string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetPasswordHash(ctx context.Context, identifier string) (string, error)
}

// User represents a stored user account.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	// PasswordHash is never serialized and never leaves the service layer.
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Safe returns a copy of the user with the password hash stripped.
func (u User) Safe() User {
	u.PasswordHash = ""
	return u
}
