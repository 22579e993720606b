package repository

import (
	"guardian-portal-go/internal/model"

	"gorm.io/gorm"
)

// ContentRepository defines data operations for content items.
type ContentRepository interface {
	Create(item *model.ContentItem) error
	FindByID(accountID, id uint) (*model.ContentItem, error)
	FindByCategory(accountID, categoryID uint) ([]model.ContentItem, error)
	Update(item *model.ContentItem) error
	Delete(accountID, id uint) error
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(item *model.ContentItem) error {
	return r.db.Create(item).Error
}

func (r *contentRepository) FindByID(accountID, id uint) (*model.ContentItem, error) {
	var item model.ContentItem
	err := r.db.Where("account_id = ? AND id = ?", accountID, id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) FindByCategory(accountID, categoryID uint) ([]model.ContentItem, error) {
	var items []model.ContentItem
	err := r.db.Where("account_id = ? AND category_id = ?", accountID, categoryID).Find(&items).Error
	return items, err
}

func (r *contentRepository) Update(item *model.ContentItem) error {
	return r.db.Save(item).Error
}

func (r *contentRepository) Delete(accountID, id uint) error {
	return r.db.Where("account_id = ?", accountID).Delete(&model.ContentItem{}, id).Error
}
