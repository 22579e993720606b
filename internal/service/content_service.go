package service

import (
	"context"
	"fmt"
	"strings"

	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/repository"
)

// ContentInput carries the caregiver-supplied fields of a content item.
type ContentInput struct {
	Title       string
	Description string
	Keywords    []string
	MediaURL    string
	MediaType   string
}

// ContentService defines the dashboard operations on content items.
type ContentService interface {
	Create(ctx context.Context, accountID, categoryID uint, input ContentInput) (*model.ContentItem, error)
	ListByCategory(accountID, categoryID uint) ([]model.ContentItem, error)
	Update(ctx context.Context, accountID, id uint, input ContentInput) (*model.ContentItem, error)
	Delete(ctx context.Context, accountID, id uint) error
}

type contentService struct {
	contentRepo      repository.ContentRepository
	categoryRepo     repository.CategoryRepository
	knowledgeService KnowledgeService
}

// NewContentService creates a new ContentService.
func NewContentService(contentRepo repository.ContentRepository, categoryRepo repository.CategoryRepository, knowledgeService KnowledgeService) ContentService {
	return &contentService{
		contentRepo:      contentRepo,
		categoryRepo:     categoryRepo,
		knowledgeService: knowledgeService,
	}
}

func (s *contentService) Create(ctx context.Context, accountID, categoryID uint, input ContentInput) (*model.ContentItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("content title is required")
	}
	// The category must be live and belong to the same account.
	if _, err := s.categoryRepo.FindByID(accountID, categoryID); err != nil {
		return nil, fmt.Errorf("category not found: %w", err)
	}

	item := &model.ContentItem{
		AccountID:   accountID,
		CategoryID:  categoryID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Keywords:    normalizeKeywords(input.Keywords),
		MediaURL:    strings.TrimSpace(input.MediaURL),
		MediaType:   strings.TrimSpace(input.MediaType),
	}
	if err := s.contentRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create content item: %w", err)
	}
	s.knowledgeService.InvalidateAccount(ctx, accountID)
	return item, nil
}

func (s *contentService) ListByCategory(accountID, categoryID uint) ([]model.ContentItem, error) {
	return s.contentRepo.FindByCategory(accountID, categoryID)
}

func (s *contentService) Update(ctx context.Context, accountID, id uint, input ContentInput) (*model.ContentItem, error) {
	item, err := s.contentRepo.FindByID(accountID, id)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("content title is required")
	}
	item.Title = title
	item.Description = strings.TrimSpace(input.Description)
	item.Keywords = normalizeKeywords(input.Keywords)
	item.MediaURL = strings.TrimSpace(input.MediaURL)
	item.MediaType = strings.TrimSpace(input.MediaType)
	if err := s.contentRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update content item: %w", err)
	}
	s.knowledgeService.InvalidateAccount(ctx, accountID)
	return item, nil
}

func (s *contentService) Delete(ctx context.Context, accountID, id uint) error {
	if _, err := s.contentRepo.FindByID(accountID, id); err != nil {
		return err
	}
	if err := s.contentRepo.Delete(accountID, id); err != nil {
		return fmt.Errorf("failed to delete content item: %w", err)
	}
	s.knowledgeService.InvalidateAccount(ctx, accountID)
	return nil
}

// normalizeKeywords trims each keyword and drops empties and
// case-insensitive duplicates, preserving order.
func normalizeKeywords(keywords []string) model.StringList {
	seen := make(map[string]struct{}, len(keywords))
	out := make(model.StringList, 0, len(keywords))
	for _, keyword := range keywords {
		kw := strings.TrimSpace(keyword)
		if kw == "" {
			continue
		}
		lower := strings.ToLower(kw)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, kw)
	}
	return out
}
