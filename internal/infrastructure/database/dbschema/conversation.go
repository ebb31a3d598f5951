package dbschema

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"duochat-server/internal/domain/conversation"
)

// Conversation is the database schema for conversations.
type Conversation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PublicID  string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID    string    `gorm:"type:varchar(64);index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Turns []ConversationTurn `gorm:"foreignKey:ConversationID"`
}

// TableName returns the table name for Conversation.
func (Conversation) TableName() string {
	return "conversations"
}

// ConversationTurn is the database schema for one turn. SequenceNumber
// keeps turns strictly ordered within a conversation.
type ConversationTurn struct {
	ID             uint          `gorm:"primaryKey;autoIncrement"`
	ConversationID uint          `gorm:"index:idx_turn_conversation_sequence,unique;not null"`
	SequenceNumber int           `gorm:"index:idx_turn_conversation_sequence,unique;not null"`
	Role           string        `gorm:"type:varchar(20);not null"`
	Timestamp      time.Time     `gorm:"column:timestamp;not null"`
	Fragments      JSONFragments `gorm:"type:jsonb;not null"`
	CreatedAt      time.Time     `gorm:"autoCreateTime"`
}

// TableName returns the table name for ConversationTurn.
func (ConversationTurn) TableName() string {
	return "conversation_turns"
}

// JSONFragments stores a turn's (model, text) pairs as jsonb.
type JSONFragments []conversation.Fragment

func (j JSONFragments) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal([]conversation.Fragment{})
	}
	return json.Marshal(j)
}

func (j *JSONFragments) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, j)
}

// NewSchemaConversation creates a database row from the domain
// conversation. Turns are stored separately.
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		ID:        c.ID,
		PublicID:  c.PublicID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewSchemaTurn creates a database row from a domain turn.
func NewSchemaTurn(conversationID uint, sequence int, t *conversation.Turn) *ConversationTurn {
	return &ConversationTurn{
		ConversationID: conversationID,
		SequenceNumber: sequence,
		Role:           string(t.Role),
		Timestamp:      t.Timestamp,
		Fragments:      JSONFragments(t.Fragments),
	}
}

// EtoD converts the database row to a domain turn.
func (t *ConversationTurn) EtoD() conversation.Turn {
	return conversation.Turn{
		Role:      conversation.Role(t.Role),
		Timestamp: t.Timestamp,
		Fragments: []conversation.Fragment(t.Fragments),
	}
}

// EtoD converts the database row, including loaded turns, to the domain
// conversation.
func (c *Conversation) EtoD() *conversation.Conversation {
	turns := make([]conversation.Turn, 0, len(c.Turns))
	for _, t := range c.Turns {
		turns = append(turns, t.EtoD())
	}
	return &conversation.Conversation{
		ID:        c.ID,
		PublicID:  c.PublicID,
		UserID:    c.UserID,
		Turns:     turns,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
