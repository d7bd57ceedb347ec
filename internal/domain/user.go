package domain

import (
	"context"
	"time"
)

// User represents a registered account. IsAdmin grants post management.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts the user. The very first account is stored as admin and
	// user.IsAdmin reflects what was persisted.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
	Count(ctx context.Context) (int, error)
}
