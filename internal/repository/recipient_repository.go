package repository

import (
	"context"

	"guardian-portal-go/internal/model"

	"gorm.io/gorm"
)

// RecipientRepository defines data operations for recipient profiles.
type RecipientRepository interface {
	Create(recipient *model.RecipientProfile) error
	// FindByPhone resolves the sender of an inbound message. Returns
	// gorm.ErrRecordNotFound for unknown numbers.
	FindByPhone(ctx context.Context, phoneNumber string) (*model.RecipientProfile, error)
	FindAllByAccount(accountID uint) ([]model.RecipientProfile, error)
	Delete(accountID, id uint) error
}

type recipientRepository struct {
	db *gorm.DB
}

// NewRecipientRepository creates a new RecipientRepository.
func NewRecipientRepository(db *gorm.DB) RecipientRepository {
	return &recipientRepository{db: db}
}

func (r *recipientRepository) Create(recipient *model.RecipientProfile) error {
	return r.db.Create(recipient).Error
}

func (r *recipientRepository) FindByPhone(ctx context.Context, phoneNumber string) (*model.RecipientProfile, error) {
	var recipient model.RecipientProfile
	err := r.db.WithContext(ctx).Where("phone_number = ?", phoneNumber).First(&recipient).Error
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}

func (r *recipientRepository) FindAllByAccount(accountID uint) ([]model.RecipientProfile, error) {
	var recipients []model.RecipientProfile
	err := r.db.Where("account_id = ?", accountID).Find(&recipients).Error
	return recipients, err
}

func (r *recipientRepository) Delete(accountID, id uint) error {
	return r.db.Where("account_id = ?", accountID).Delete(&model.RecipientProfile{}, id).Error
}
