package service

import (
	"context"
	"fmt"
	"strings"

	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/repository"
)

// CategoryService defines the dashboard operations on knowledge categories.
type CategoryService interface {
	Create(ctx context.Context, accountID uint, name, description string) (*model.Category, error)
	List(accountID uint) ([]model.Category, error)
	Update(ctx context.Context, accountID, id uint, name, description string) (*model.Category, error)
	// Delete removes the category and cascades deletion of its content items.
	Delete(ctx context.Context, accountID, id uint) error
}

type categoryService struct {
	categoryRepo     repository.CategoryRepository
	knowledgeService KnowledgeService
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository, knowledgeService KnowledgeService) CategoryService {
	return &categoryService{
		categoryRepo:     categoryRepo,
		knowledgeService: knowledgeService,
	}
}

func (s *categoryService) Create(ctx context.Context, accountID uint, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	category := &model.Category{
		AccountID:   accountID,
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.knowledgeService.InvalidateAccount(ctx, accountID)
	return category, nil
}

func (s *categoryService) List(accountID uint) ([]model.Category, error) {
	return s.categoryRepo.FindAllByAccount(accountID)
}

func (s *categoryService) Update(ctx context.Context, accountID, id uint, name, description string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(accountID, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	category.Name = name
	category.Description = strings.TrimSpace(description)
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	s.knowledgeService.InvalidateAccount(ctx, accountID)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, accountID, id uint) error {
	if _, err := s.categoryRepo.FindByID(accountID, id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(accountID, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.knowledgeService.InvalidateAccount(ctx, accountID)
	return nil
}
