package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"duochat-server/internal/domain/conversation"
)

// TurnRequest is one inbound chat turn.
type TurnRequest struct {
	UserID         string
	ConversationID string
	Model          string
	Prompt         string
}

// TurnResponse is the merged outcome of one turn.
type TurnResponse struct {
	ConversationID string
	Fragments      []conversation.Fragment
	Complex        bool
}

// Service reconciles per-session conversation state with storage and
// drives the dispatcher for each turn.
type Service struct {
	sessions      *SessionStore
	conversations *conversation.Service
	dispatcher    *Dispatcher
	log           zerolog.Logger
}

// NewService constructs the chat service.
func NewService(sessions *SessionStore, conversations *conversation.Service, dispatcher *Dispatcher, log zerolog.Logger) *Service {
	return &Service{
		sessions:      sessions,
		conversations: conversations,
		dispatcher:    dispatcher,
		log:           log,
	}
}

// Models lists the model names the service can dispatch to, hosted first.
func (s *Service) Models() []string {
	return s.dispatcher.Models()
}

// SubmitTurn runs one full turn: reconcile session history, classify and
// dispatch, persist both sides of the exchange, and return the ordered
// fragments. The user-turn write failing fails the turn; the
// assistant-turn write failing degrades to a logged success.
func (s *Service) SubmitTurn(ctx context.Context, req TurnRequest) (*TurnResponse, error) {
	sess := s.sessions.Acquire(req.UserID)
	sess.Lock()
	defer sess.Unlock()

	if err := s.reconcile(ctx, sess, req.UserID, req.ConversationID); err != nil {
		return nil, err
	}

	sess.History = append(sess.History, Entry{
		Role:  conversation.RoleUser,
		Parts: []string{req.Prompt},
	})

	fragments, complex, err := s.dispatcher.Dispatch(ctx, sess.History, req.Prompt, req.UserID, req.Model)
	if err != nil {
		sess.History = sess.History[:len(sess.History)-1]
		return nil, err
	}

	now := time.Now()
	userTurn := &conversation.Turn{
		Role:      conversation.RoleUser,
		Timestamp: now,
		Fragments: []conversation.Fragment{{Model: req.Model, Text: req.Prompt}},
	}
	if err := s.conversations.AppendTurn(ctx, sess.ConversationID, userTurn); err != nil {
		// The turn is not durable; undo the uncommitted in-memory entry so
		// a retry does not duplicate it.
		sess.History = sess.History[:len(sess.History)-1]
		return nil, fmt.Errorf("persist user turn: %w", err)
	}

	if len(fragments) > 0 {
		assistantTurn := &conversation.Turn{
			Role:      conversation.RoleAssistant,
			Timestamp: now,
			Fragments: fragments,
		}
		if err := s.conversations.AppendTurn(ctx, sess.ConversationID, assistantTurn); err != nil {
			// Degraded success: the user turn is durable, the reply is not.
			// The store tolerates the unmatched user turn on the next load.
			s.log.Error().Err(err).
				Str("conversation_id", sess.ConversationID).
				Msg("persist assistant turn failed, returning degraded response")
		}
	}

	for _, fragment := range fragments {
		sess.History = append(sess.History, Entry{
			Role:  conversation.RoleAssistant,
			Parts: []string{fragment.Text},
		})
	}

	return &TurnResponse{
		ConversationID: sess.ConversationID,
		Fragments:      fragments,
		Complex:        complex,
	}, nil
}

// reconcile applies the cache-invalidation rule keyed on conversation
// identity: a different incoming id (including the no-current-id case)
// discards the in-memory history and reloads it; the same id keeps it.
// No incoming id starts a fresh conversation.
func (s *Service) reconcile(ctx context.Context, sess *Session, userID, conversationID string) error {
	if conversationID == "" {
		conv, err := s.conversations.Create(ctx, userID)
		if err != nil {
			return err
		}
		sess.ConversationID = conv.PublicID
		sess.History = nil
		return nil
	}

	if conversationID == sess.ConversationID {
		return nil
	}

	conv, err := s.conversations.GetOwned(ctx, conversationID, userID)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			// Unknown or foreign id: start over rather than appending into
			// a conversation that cannot be loaded back.
			conv, err = s.conversations.Create(ctx, userID)
			if err != nil {
				return err
			}
			sess.ConversationID = conv.PublicID
			sess.History = nil
			return nil
		}
		return err
	}

	sess.ConversationID = conv.PublicID
	sess.History = Flatten(conv.Turns)
	return nil
}
