package service

import (
	"context"
	"errors"
	"strings"

	"guardian-portal-go/internal/config"
	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/repository"
	"guardian-portal-go/pkg/kafka"
	"guardian-portal-go/pkg/llm"
	"guardian-portal-go/pkg/log"
	"guardian-portal-go/pkg/tasks"

	"gorm.io/gorm"
)

// FallbackReply is the only failure text a recipient ever sees. Raw errors
// never reach the SMS channel.
const FallbackReply = "I'm having trouble right now. Please try again in a moment."

// emptyCompletionReply covers the model returning a well-formed but empty
// completion.
const emptyCompletionReply = "I'm sorry, I couldn't generate a response. Please try again."

// AuditPublisher emits conversation events for downstream indexing. Publish
// failures are non-fatal to the pipeline.
type AuditPublisher interface {
	Publish(ctx context.Context, event tasks.ConversationEvent) error
}

// KafkaAuditPublisher publishes audit events to the configured Kafka topic.
type KafkaAuditPublisher struct{}

// Publish satisfies AuditPublisher.
func (KafkaAuditPublisher) Publish(ctx context.Context, event tasks.ConversationEvent) error {
	return kafka.PublishConversationEvent(ctx, event)
}

// SMSService handles one inbound SMS end to end: resolve the sender, load
// knowledge, match, compose, call the model, log, reply.
type SMSService interface {
	// HandleIncomingMessage returns the reply text and whether a reply should
	// be sent at all. ok is false only for unknown senders, which receive an
	// empty gateway acknowledgment; a known sender always gets exactly one
	// reply, no matter what fails downstream.
	HandleIncomingMessage(ctx context.Context, fromNumber, messageBody string) (reply string, ok bool)
}

type smsService struct {
	recipientRepo    repository.RecipientRepository
	caregiverRepo    repository.CaregiverRepository
	knowledgeService KnowledgeService
	conversationRepo repository.ConversationRepository
	llmClient        llm.Client
	publisher        AuditPublisher
	feed             *Feed
	cfg              config.SMSConfig
}

// NewSMSService creates a new SMSService.
func NewSMSService(
	recipientRepo repository.RecipientRepository,
	caregiverRepo repository.CaregiverRepository,
	knowledgeService KnowledgeService,
	conversationRepo repository.ConversationRepository,
	llmClient llm.Client,
	publisher AuditPublisher,
	feed *Feed,
	cfg config.SMSConfig,
) SMSService {
	return &smsService{
		recipientRepo:    recipientRepo,
		caregiverRepo:    caregiverRepo,
		knowledgeService: knowledgeService,
		conversationRepo: conversationRepo,
		llmClient:        llmClient,
		publisher:        publisher,
		feed:             feed,
		cfg:              cfg,
	}
}

func (s *smsService) HandleIncomingMessage(ctx context.Context, fromNumber, messageBody string) (string, bool) {
	// 1. Resolve the sender. Unknown numbers are silently acknowledged and
	// never reach the matcher or the model.
	recipient, err := s.recipientRepo.FindByPhone(ctx, fromNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Infof("ignoring SMS from unknown sender %s", fromNumber)
			return "", false
		}
		// The directory itself failed, so the sender cannot be identified.
		// Reply with the fallback rather than dropping the message.
		log.Error("recipient lookup failed", err)
		return s.fallbackReply(), true
	}

	// 2. Load the account's knowledge. A load failure degrades to empty
	// knowledge, which forces open mode downstream.
	var items []model.ContentItem
	var categories []model.Category
	snapshot, err := s.knowledgeService.LoadSnapshot(ctx, recipient.AccountID)
	if err != nil {
		log.Error("knowledge load failed, continuing with empty knowledge", err)
	} else {
		items = snapshot.ContentItems
		categories = snapshot.Categories
	}

	// 3. Match and compose.
	matched := MatchKnowledge(messageBody, items, categories)
	prompt := ComposePrompt(messageBody, matched, s.toneGuidance(recipient.AccountID), categoryNames(categories))

	// 4. Call the model. Any failure resolves to the fixed fallback reply;
	// no synchronous retry on this channel.
	reply, err := s.llmClient.Complete(ctx, prompt.System, prompt.User, 0)
	if err != nil {
		log.Error("model call failed, substituting fallback reply", err)
		reply = s.fallbackReply()
	} else if strings.TrimSpace(reply) == "" {
		reply = emptyCompletionReply
	}

	// 5. Log the exchange. The reply is already computed; an audit failure
	// must not stop it from being sent.
	conversation := &model.Conversation{
		AccountID:       recipient.AccountID,
		RecipientID:     recipient.ID,
		PhoneNumber:     fromNumber,
		IncomingMessage: messageBody,
		Response:        reply,
		ContentSent:     contentTitles(matched.Content),
	}
	if err := s.conversationRepo.Append(ctx, conversation); err != nil {
		log.Error("failed to persist conversation record", err)
	} else {
		s.publishEvent(ctx, conversation)
		if s.feed != nil {
			s.feed.Broadcast(conversation)
		}
	}

	return reply, true
}

// toneGuidance loads the caregiver's tone configuration, falling back to the
// configured default when absent. Composer-level defaulting still applies.
func (s *smsService) toneGuidance(accountID uint) string {
	caregiver, err := s.caregiverRepo.FindByID(accountID)
	if err != nil {
		log.Warnf("tone guidance lookup failed for account %d: %v", accountID, err)
		return s.cfg.DefaultTone
	}
	if strings.TrimSpace(caregiver.ToneGuidance) == "" {
		return s.cfg.DefaultTone
	}
	return caregiver.ToneGuidance
}

func (s *smsService) fallbackReply() string {
	if s.cfg.FallbackReply != "" {
		return s.cfg.FallbackReply
	}
	return FallbackReply
}

func (s *smsService) publishEvent(ctx context.Context, conversation *model.Conversation) {
	if s.publisher == nil {
		return
	}
	event := tasks.ConversationEvent{
		ConversationID:  conversation.ID,
		AccountID:       conversation.AccountID,
		RecipientID:     conversation.RecipientID,
		PhoneNumber:     conversation.PhoneNumber,
		IncomingMessage: conversation.IncomingMessage,
		Response:        conversation.Response,
		ContentSent:     conversation.ContentSent,
		CreatedAt:       conversation.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warnf("failed to publish conversation event %d: %v", conversation.ID, err)
	}
}

func categoryNames(categories []model.Category) []string {
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	return names
}

func contentTitles(items []model.ContentItem) []string {
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	return titles
}
