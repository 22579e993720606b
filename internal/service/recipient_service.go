package service

import (
	"fmt"
	"strings"

	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/repository"
)

// RecipientService defines the dashboard operations on recipient profiles.
type RecipientService interface {
	Create(accountID uint, phoneNumber, name string) (*model.RecipientProfile, error)
	List(accountID uint) ([]model.RecipientProfile, error)
	Delete(accountID, id uint) error
}

type recipientService struct {
	recipientRepo repository.RecipientRepository
}

// NewRecipientService creates a new RecipientService.
func NewRecipientService(recipientRepo repository.RecipientRepository) RecipientService {
	return &recipientService{recipientRepo: recipientRepo}
}

func (s *recipientService) Create(accountID uint, phoneNumber, name string) (*model.RecipientProfile, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, fmt.Errorf("phone number is required")
	}
	recipient := &model.RecipientProfile{
		AccountID:   accountID,
		PhoneNumber: phoneNumber,
		Name:        strings.TrimSpace(name),
	}
	if err := s.recipientRepo.Create(recipient); err != nil {
		return nil, fmt.Errorf("failed to create recipient: %w", err)
	}
	return recipient, nil
}

func (s *recipientService) List(accountID uint) ([]model.RecipientProfile, error) {
	return s.recipientRepo.FindAllByAccount(accountID)
}

func (s *recipientService) Delete(accountID, id uint) error {
	return s.recipientRepo.Delete(accountID, id)
}
