package repository

import (
	"context"

	"guardian-portal-go/internal/model"

	"gorm.io/gorm"
)

// ConversationRepository defines operations on the conversation audit log.
type ConversationRepository interface {
	// Append persists one conversation record. The pipeline treats a failure
	// here as non-fatal.
	Append(ctx context.Context, conversation *model.Conversation) error
	FindRecentByAccount(accountID uint, limit int) ([]model.Conversation, error)
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository.
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Append(ctx context.Context, conversation *model.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

func (r *conversationRepository) FindRecentByAccount(accountID uint, limit int) ([]model.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	var conversations []model.Conversation
	err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&conversations).Error
	return conversations, err
}
