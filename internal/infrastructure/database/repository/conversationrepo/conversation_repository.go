package conversationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"duochat-server/internal/domain/conversation"
	"duochat-server/internal/infrastructure/database/dbschema"
)

// ConversationRepository implements conversation.Repository using GORM.
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository.
func NewConversationRepository(db *gorm.DB) conversation.Repository {
	return &ConversationRepository{db: db}
}

// Create stores a new conversation and backfills its row id.
func (r *ConversationRepository) Create(ctx context.Context, c *conversation.Conversation) error {
	row := dbschema.NewSchemaConversation(c)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	c.ID = row.ID
	return nil
}

// FindByPublicID loads a conversation with its turns in sequence order.
func (r *ConversationRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	var row dbschema.Conversation
	err := r.db.WithContext(ctx).
		Preload("Turns", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_number ASC")
		}).
		Where("public_id = ?", publicID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, conversation.ErrNotFound
		}
		return nil, err
	}
	return row.EtoD(), nil
}

// FindByFilter lists conversations with their turns, newest updated first.
func (r *ConversationRepository) FindByFilter(ctx context.Context, filter conversation.Filter) ([]*conversation.Conversation, error) {
	query := r.db.WithContext(ctx).
		Preload("Turns", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_number ASC")
		})

	if filter.PublicID != nil {
		query = query.Where("public_id = ?", *filter.PublicID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var rows []dbschema.Conversation
	if err := query.Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	conversations := make([]*conversation.Conversation, 0, len(rows))
	for i := range rows {
		conversations = append(conversations, rows[i].EtoD())
	}
	return conversations, nil
}

// Delete removes a conversation; its turns cascade.
func (r *ConversationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&dbschema.Conversation{ID: id}).Error
}

// AppendTurn adds one turn at the next sequence number. This is a single
// independent write; the caller appends the user turn and the assistant
// turn of an exchange separately.
func (r *ConversationRepository) AppendTurn(ctx context.Context, conversationID uint, turn *conversation.Turn) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int64
		err := tx.Model(&dbschema.ConversationTurn{}).
			Where("conversation_id = ?", conversationID).
			Count(&next).Error
		if err != nil {
			return err
		}

		row := dbschema.NewSchemaTurn(conversationID, int(next), turn)
		if err := tx.Create(row).Error; err != nil {
			return err
		}

		return tx.Model(&dbschema.Conversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", turn.Timestamp).Error
	})
}
