package repository

import (
	"context"

	"guardian-portal-go/internal/model"

	"gorm.io/gorm"
)

// KnowledgeRepository is the read-only view over an account's categories and
// content items used by the response pipeline.
type KnowledgeRepository interface {
	ListCategories(ctx context.Context, accountID uint) ([]model.Category, error)
	ListContentItems(ctx context.Context, accountID uint) ([]model.ContentItem, error)
}

type knowledgeRepository struct {
	db *gorm.DB
}

// NewKnowledgeRepository creates a new KnowledgeRepository.
func NewKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

func (r *knowledgeRepository) ListCategories(ctx context.Context, accountID uint) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Find(&categories).Error
	return categories, err
}

func (r *knowledgeRepository) ListContentItems(ctx context.Context, accountID uint) ([]model.ContentItem, error) {
	var items []model.ContentItem
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Find(&items).Error
	return items, err
}
