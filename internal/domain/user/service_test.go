package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepo is an in-memory user.Repository.
type mockUserRepo struct {
	byEmail map[string]*User
	nextID  uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: make(map[string]*User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	m.nextID++
	u.ID = m.nextID
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByPublicID(_ context.Context, publicID string) (*User, error) {
	for _, u := range m.byEmail {
		if u.PublicID == publicID {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, bcrypt.MinCost)

	u, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, u.PublicID)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	got, err := svc.Authenticate(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.PublicID, got.PublicID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice2", "alice@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsFederatedOnlyAccount(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, bcrypt.MinCost)

	_, err := svc.EnsureFederated(context.Background(), Identity{
		Email:   "fed@example.com",
		Name:    "Fed User",
		Subject: "google-sub-1",
	})
	require.NoError(t, err)

	// A Google-only account has no password hash to compare against.
	_, err = svc.Authenticate(context.Background(), "fed@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureFederatedReusesExistingAccount(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, bcrypt.MinCost)

	registered, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	fed, err := svc.EnsureFederated(context.Background(), Identity{
		Email:   "alice@example.com",
		Name:    "Alice",
		Subject: "google-sub-2",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.PublicID, fed.PublicID)
}
