package repository

import (
	"guardian-portal-go/internal/model"

	"gorm.io/gorm"
)

// CategoryRepository defines data operations for knowledge categories.
type CategoryRepository interface {
	Create(category *model.Category) error
	FindByID(accountID, id uint) (*model.Category, error)
	FindAllByAccount(accountID uint) ([]model.Category, error)
	Update(category *model.Category) error
	// Delete removes the category and all of its content items in one
	// transaction.
	Delete(accountID, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindByID(accountID, id uint) (*model.Category, error) {
	var category model.Category
	err := r.db.Where("account_id = ? AND id = ?", accountID, id).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAllByAccount(accountID uint) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("account_id = ?", accountID).Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Delete(accountID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ? AND category_id = ?", accountID, id).
			Delete(&model.ContentItem{}).Error; err != nil {
			return err
		}
		return tx.Where("account_id = ?", accountID).
			Delete(&model.Category{}, id).Error
	})
}
