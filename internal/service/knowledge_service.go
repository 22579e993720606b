package service

import (
	"context"

	"guardian-portal-go/internal/repository"
	"guardian-portal-go/pkg/log"
)

// KnowledgeService loads account-scoped knowledge snapshots, fronting MySQL
// with the Redis cache so the SMS pipeline stays cheap per message.
type KnowledgeService interface {
	LoadSnapshot(ctx context.Context, accountID uint) (*repository.KnowledgeSnapshot, error)
	// InvalidateAccount drops the cached snapshot after a dashboard write.
	InvalidateAccount(ctx context.Context, accountID uint)
}

type knowledgeService struct {
	knowledgeRepo repository.KnowledgeRepository
	cache         repository.KnowledgeCache
}

// NewKnowledgeService creates a new KnowledgeService.
func NewKnowledgeService(knowledgeRepo repository.KnowledgeRepository, cache repository.KnowledgeCache) KnowledgeService {
	return &knowledgeService{
		knowledgeRepo: knowledgeRepo,
		cache:         cache,
	}
}

// LoadSnapshot returns the account's categories and content items, from cache
// when possible. A cache failure is logged and falls through to MySQL.
func (s *knowledgeService) LoadSnapshot(ctx context.Context, accountID uint) (*repository.KnowledgeSnapshot, error) {
	if s.cache != nil {
		snapshot, err := s.cache.Get(ctx, accountID)
		if err != nil {
			log.Warnf("knowledge cache read failed for account %d: %v", accountID, err)
		} else if snapshot != nil {
			return snapshot, nil
		}
	}

	categories, err := s.knowledgeRepo.ListCategories(ctx, accountID)
	if err != nil {
		return nil, err
	}
	items, err := s.knowledgeRepo.ListContentItems(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snapshot := &repository.KnowledgeSnapshot{
		Categories:   categories,
		ContentItems: items,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, accountID, snapshot); err != nil {
			log.Warnf("knowledge cache write failed for account %d: %v", accountID, err)
		}
	}
	return snapshot, nil
}

func (s *knowledgeService) InvalidateAccount(ctx context.Context, accountID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, accountID); err != nil {
		log.Warnf("knowledge cache invalidation failed for account %d: %v", accountID, err)
	}
}
