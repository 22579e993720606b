package service

import (
	"context"

	"guardian-portal-go/internal/config"
	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/repository"
	"guardian-portal-go/pkg/es"
	"guardian-portal-go/pkg/tasks"
)

// ConversationService exposes the audit log to the dashboard.
type ConversationService interface {
	ListRecent(accountID uint, limit int) ([]model.Conversation, error)
	// Search runs a full-text query against the conversation search index.
	Search(ctx context.Context, accountID uint, query string, limit int) ([]tasks.ConversationEvent, error)
}

type conversationService struct {
	conversationRepo repository.ConversationRepository
	esCfg            config.ElasticsearchConfig
}

// NewConversationService creates a new ConversationService.
func NewConversationService(conversationRepo repository.ConversationRepository, esCfg config.ElasticsearchConfig) ConversationService {
	return &conversationService{
		conversationRepo: conversationRepo,
		esCfg:            esCfg,
	}
}

func (s *conversationService) ListRecent(accountID uint, limit int) ([]model.Conversation, error) {
	return s.conversationRepo.FindRecentByAccount(accountID, limit)
}

func (s *conversationService) Search(ctx context.Context, accountID uint, query string, limit int) ([]tasks.ConversationEvent, error) {
	return es.SearchConversations(ctx, s.esCfg.IndexName, accountID, query, limit)
}
