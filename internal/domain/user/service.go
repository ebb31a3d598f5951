package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service persists and authenticates users.
type Service struct {
	repo       Repository
	bcryptCost int
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

// Register creates a credentials-backed account. The email must be unused.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		PublicID:     uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies an email/password pair. A missing user and a bad
// password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// EnsureFederated resolves a federated identity to a local account,
// creating one on first login. Lookup is by email, matching how the
// account may also have been registered with a password.
func (s *Service) EnsureFederated(ctx context.Context, identity Identity) (*User, error) {
	if identity.Email == "" {
		return nil, errors.New("federated identity has no email")
	}

	u, err := s.repo.FindByEmail(ctx, identity.Email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	u = &User{
		PublicID: uuid.NewString(),
		Email:    identity.Email,
		Username: identity.Name,
		Picture:  identity.Picture,
		Subject:  identity.Subject,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create federated user: %w", err)
	}
	return u, nil
}

// GetByPublicID resolves a user by their external identifier.
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*User, error) {
	return s.repo.FindByPublicID(ctx, publicID)
}
