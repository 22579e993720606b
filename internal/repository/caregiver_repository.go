// Package repository contains the data access layer.
package repository

import (
	"guardian-portal-go/internal/model"

	"gorm.io/gorm"
)

// CaregiverRepository defines data operations for caregiver accounts.
type CaregiverRepository interface {
	Create(caregiver *model.Caregiver) error
	FindByEmail(email string) (*model.Caregiver, error)
	FindByID(id uint) (*model.Caregiver, error)
	Update(caregiver *model.Caregiver) error
}

type caregiverRepository struct {
	db *gorm.DB
}

// NewCaregiverRepository creates a new CaregiverRepository.
func NewCaregiverRepository(db *gorm.DB) CaregiverRepository {
	return &caregiverRepository{db: db}
}

func (r *caregiverRepository) Create(caregiver *model.Caregiver) error {
	return r.db.Create(caregiver).Error
}

func (r *caregiverRepository) FindByEmail(email string) (*model.Caregiver, error) {
	var caregiver model.Caregiver
	err := r.db.Where("email = ?", email).First(&caregiver).Error
	if err != nil {
		return nil, err
	}
	return &caregiver, nil
}

func (r *caregiverRepository) FindByID(id uint) (*model.Caregiver, error) {
	var caregiver model.Caregiver
	err := r.db.First(&caregiver, id).Error
	if err != nil {
		return nil, err
	}
	return &caregiver, nil
}

func (r *caregiverRepository) Update(caregiver *model.Caregiver) error {
	return r.db.Save(caregiver).Error
}
