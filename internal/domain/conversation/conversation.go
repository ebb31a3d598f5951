package conversation

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Role identifies which side of the exchange produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Fragment is one (model, text) pair inside a turn. A user turn carries
// exactly one fragment whose model is the model the user selected; an
// assistant turn carries one fragment per backend that responded.
type Fragment struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

// Turn is one logical exchange unit in a conversation.
type Turn struct {
	Role      Role       `json:"role"`
	Timestamp time.Time  `json:"timestamp"`
	Fragments []Fragment `json:"messages"`
}

// Conversation is an append-only, strictly ordered sequence of turns
// owned by a single user.
type Conversation struct {
	ID        uint      `json:"-"`
	PublicID  string    `json:"id"`
	UserID    string    `json:"-"`
	Turns     []Turn    `json:"messages,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrNotFound is returned when a conversation does not exist or is not
// owned by the requesting user.
var ErrNotFound = errors.New("conversation not found")

// Filter narrows repository lookups.
type Filter struct {
	PublicID *string
	UserID   *string
}

// Repository defines storage operations for conversations. AppendTurn is
// a single independent write; the user turn and the assistant turn of one
// exchange are appended separately and a trailing user turn without a
// reply must be tolerated on the next read.
type Repository interface {
	Create(ctx context.Context, conversation *Conversation) error
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Conversation, error)
	Delete(ctx context.Context, id uint) error
	AppendTurn(ctx context.Context, conversationID uint, turn *Turn) error
}

// New creates an empty conversation for the given owner.
func New(publicID, userID string) *Conversation {
	now := time.Now()
	return &Conversation{
		PublicID:  publicID,
		UserID:    userID,
		Turns:     []Turn{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

const previewWords = 6

// Preview returns the first words of the first user fragment, used as the
// conversation label in listings.
func (c *Conversation) Preview() string {
	if len(c.Turns) == 0 || len(c.Turns[0].Fragments) == 0 {
		return "No Msg"
	}
	words := strings.Fields(c.Turns[0].Fragments[0].Text)
	if len(words) == 0 {
		return "No Msg"
	}
	if len(words) > previewWords {
		words = words[:previewWords]
	}
	return strings.Join(words, " ")
}
