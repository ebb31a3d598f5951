package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service implements conversation use cases on top of the repository.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create starts an empty conversation for the user. Conversations are
// created lazily on the first message of a session.
func (s *Service) Create(ctx context.Context, userID string) (*Conversation, error) {
	conv := New(NewPublicID(), userID)
	if err := s.repo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// GetOwned fetches a conversation and verifies ownership. A conversation
// belonging to another user is indistinguishable from a missing one.
func (s *Service) GetOwned(ctx context.Context, publicID, userID string) (*Conversation, error) {
	conv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, ErrNotFound
	}
	return conv, nil
}

// List returns all conversations owned by the user.
func (s *Service) List(ctx context.Context, userID string) ([]*Conversation, error) {
	return s.repo.FindByFilter(ctx, Filter{UserID: &userID})
}

// Delete removes a conversation after verifying ownership.
func (s *Service) Delete(ctx context.Context, publicID, userID string) error {
	conv, err := s.GetOwned(ctx, publicID, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, conv.ID)
}

// History returns the full ordered turn sequence of an owned conversation.
func (s *Service) History(ctx context.Context, publicID, userID string) ([]Turn, error) {
	conv, err := s.GetOwned(ctx, publicID, userID)
	if err != nil {
		return nil, err
	}
	return conv.Turns, nil
}

// AppendTurn appends one turn to the conversation identified by publicID.
func (s *Service) AppendTurn(ctx context.Context, publicID string, turn *Turn) error {
	conv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return err
	}
	if err := s.repo.AppendTurn(ctx, conv.ID, turn); err != nil {
		return fmt.Errorf("append %s turn: %w", turn.Role, err)
	}
	return nil
}

// NewPublicID generates an external conversation identifier.
func NewPublicID() string {
	return "conv_" + uuid.NewString()
}
