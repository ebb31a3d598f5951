// Package user provides user domain models and behaviors.
package user

import (
	"context"
	"errors"
	"time"
)

// User models an application user. PasswordHash is empty for accounts
// created through federated login only.
type User struct {
	ID           uint
	PublicID     string
	Email        string
	Username     string
	PasswordHash string
	Picture      string
	Subject      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity encapsulates the attributes provided by an external identity
// provider.
type Identity struct {
	Email   string
	Name    string
	Picture string
	Subject string
}

// Repository defines storage operations for users.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPublicID(ctx context.Context, publicID string) (*User, error)
}

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering an email that exists.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials is returned on a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
