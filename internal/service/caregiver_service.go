package service

import (
	"context"
	"errors"
	"fmt"

	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/repository"
	"guardian-portal-go/pkg/hash"
	"guardian-portal-go/pkg/token"

	"gorm.io/gorm"
)

// CaregiverService defines the account operations behind the dashboard.
type CaregiverService interface {
	Register(email, password, name string) (*model.Caregiver, error)
	Login(email, password string) (accessToken, refreshToken string, err error)
	GetProfile(id uint) (*model.Caregiver, error)
	// UpdateToneGuidance sets the free-text tone instruction injected into
	// every prompt for this account.
	UpdateToneGuidance(ctx context.Context, id uint, toneGuidance string) (*model.Caregiver, error)
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
}

type caregiverService struct {
	caregiverRepo repository.CaregiverRepository
	jwtManager    *token.JWTManager
}

// NewCaregiverService creates a new CaregiverService.
func NewCaregiverService(caregiverRepo repository.CaregiverRepository, jwtManager *token.JWTManager) CaregiverService {
	return &caregiverService{
		caregiverRepo: caregiverRepo,
		jwtManager:    jwtManager,
	}
}

func (s *caregiverService) Register(email, password, name string) (*model.Caregiver, error) {
	_, err := s.caregiverRepo.FindByEmail(email)
	if err == nil {
		return nil, errors.New("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	caregiver := &model.Caregiver{
		Email:    email,
		Password: hashedPassword,
		Name:     name,
	}
	if err := s.caregiverRepo.Create(caregiver); err != nil {
		return nil, fmt.Errorf("failed to create caregiver: %w", err)
	}
	return caregiver, nil
}

func (s *caregiverService) Login(email, password string) (string, string, error) {
	caregiver, err := s.caregiverRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", errors.New("invalid credentials")
		}
		return "", "", err
	}

	if !hash.CheckPassword(password, caregiver.Password) {
		return "", "", errors.New("invalid credentials")
	}

	accessToken, err := s.jwtManager.GenerateToken(caregiver.ID, caregiver.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(caregiver.ID, caregiver.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

func (s *caregiverService) GetProfile(id uint) (*model.Caregiver, error) {
	return s.caregiverRepo.FindByID(id)
}

func (s *caregiverService) UpdateToneGuidance(ctx context.Context, id uint, toneGuidance string) (*model.Caregiver, error) {
	caregiver, err := s.caregiverRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	caregiver.ToneGuidance = toneGuidance
	if err := s.caregiverRepo.Update(caregiver); err != nil {
		return nil, fmt.Errorf("failed to update tone guidance: %w", err)
	}
	return caregiver, nil
}

func (s *caregiverService) RefreshToken(refreshTokenString string) (string, string, error) {
	claims, err := s.jwtManager.VerifyToken(refreshTokenString)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	// The caregiver may have been deleted since the token was issued.
	caregiver, err := s.caregiverRepo.FindByID(claims.CaregiverID)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	newAccessToken, err := s.jwtManager.GenerateToken(caregiver.ID, caregiver.Email)
	if err != nil {
		return "", "", err
	}
	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(caregiver.ID, caregiver.Email)
	if err != nil {
		return "", "", err
	}
	return newAccessToken, newRefreshToken, nil
}
