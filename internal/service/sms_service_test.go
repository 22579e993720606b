package service

import (
	"context"
	"errors"
	"testing"

	"guardian-portal-go/internal/config"
	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/repository"
	"guardian-portal-go/pkg/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecipientRepo struct {
	recipient *model.RecipientProfile
	err       error
}

func (f *fakeRecipientRepo) Create(*model.RecipientProfile) error { return nil }
func (f *fakeRecipientRepo) FindByPhone(context.Context, string) (*model.RecipientProfile, error) {
	return f.recipient, f.err
}
func (f *fakeRecipientRepo) FindAllByAccount(uint) ([]model.RecipientProfile, error) {
	return nil, nil
}
func (f *fakeRecipientRepo) Delete(uint, uint) error { return nil }

type fakeCaregiverRepo struct {
	caregiver *model.Caregiver
	err       error
}

func (f *fakeCaregiverRepo) Create(*model.Caregiver) error { return nil }
func (f *fakeCaregiverRepo) FindByEmail(string) (*model.Caregiver, error) {
	return f.caregiver, f.err
}
func (f *fakeCaregiverRepo) FindByID(uint) (*model.Caregiver, error) {
	return f.caregiver, f.err
}
func (f *fakeCaregiverRepo) Update(*model.Caregiver) error { return nil }

type fakeKnowledgeService struct {
	snapshot *repository.KnowledgeSnapshot
	err      error
}

func (f *fakeKnowledgeService) LoadSnapshot(context.Context, uint) (*repository.KnowledgeSnapshot, error) {
	return f.snapshot, f.err
}
func (f *fakeKnowledgeService) InvalidateAccount(context.Context, uint) {}

type fakeConversationRepo struct {
	appendErr error
	appended  []*model.Conversation
}

func (f *fakeConversationRepo) Append(_ context.Context, conversation *model.Conversation) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, conversation)
	return nil
}
func (f *fakeConversationRepo) FindRecentByAccount(uint, int) ([]model.Conversation, error) {
	return nil, nil
}

type fakeLLMClient struct {
	reply      string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeLLMClient) Complete(_ context.Context, systemInstruction, userMessage string, _ int) (string, error) {
	f.calls++
	f.lastSystem = systemInstruction
	f.lastUser = userMessage
	return f.reply, f.err
}

type fakePublisher struct {
	err    error
	events []tasks.ConversationEvent
}

func (f *fakePublisher) Publish(_ context.Context, event tasks.ConversationEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type smsFixture struct {
	recipients    *fakeRecipientRepo
	caregivers    *fakeCaregiverRepo
	knowledge     *fakeKnowledgeService
	conversations *fakeConversationRepo
	llm           *fakeLLMClient
	publisher     *fakePublisher
	cfg           config.SMSConfig
}

func newSMSFixture() *smsFixture {
	return &smsFixture{
		recipients: &fakeRecipientRepo{
			recipient: &model.RecipientProfile{ID: 3, AccountID: 7, PhoneNumber: "+15550100", Name: "June"},
		},
		caregivers: &fakeCaregiverRepo{
			caregiver: &model.Caregiver{ID: 7, Email: "carer@example.com", ToneGuidance: "Keep answers short and cheerful."},
		},
		knowledge: &fakeKnowledgeService{
			snapshot: &repository.KnowledgeSnapshot{
				Categories:   []model.Category{{ID: 1, AccountID: 7, Name: "Home"}},
				ContentItems: []model.ContentItem{gateCodeItem()},
			},
		},
		conversations: &fakeConversationRepo{},
		llm:           &fakeLLMClient{reply: "The gate code is 4521."},
		publisher:     &fakePublisher{},
		cfg: config.SMSConfig{
			DefaultTone:   DefaultToneGuidance,
			FallbackReply: FallbackReply,
		},
	}
}

func (f *smsFixture) service() SMSService {
	return NewSMSService(f.recipients, f.caregivers, f.knowledge, f.conversations, f.llm, f.publisher, nil, f.cfg)
}

func TestHandleIncomingMessage_UnknownSenderIgnored(t *testing.T) {
	f := newSMSFixture()
	f.recipients.recipient = nil
	f.recipients.err = gorm.ErrRecordNotFound

	reply, ok := f.service().HandleIncomingMessage(context.Background(), "+19995550000", "whats the gate code")

	assert.False(t, ok)
	assert.Empty(t, reply)
	assert.Zero(t, f.llm.calls)
	assert.Empty(t, f.conversations.appended)
	assert.Empty(t, f.publisher.events)
}

func TestHandleIncomingMessage_DirectoryFailureGetsFallback(t *testing.T) {
	f := newSMSFixture()
	f.recipients.recipient = nil
	f.recipients.err = errors.New("mysql: connection refused")

	reply, ok := f.service().HandleIncomingMessage(context.Background(), "+15550100", "whats the gate code")

	assert.True(t, ok)
	assert.Equal(t, FallbackReply, reply)
	assert.Zero(t, f.llm.calls)
}

func TestHandleIncomingMessage_HappyPathStrict(t *testing.T) {
	f := newSMSFixture()

	reply, ok := f.service().HandleIncomingMessage(context.Background(), "+15550100", "whats the gate code")

	assert.True(t, ok)
	assert.Equal(t, "The gate code is 4521.", reply)
	assert.Equal(t, 1, f.llm.calls)
	assert.Contains(t, f.llm.lastSystem, "• Gate Code: 4521")
	assert.Contains(t, f.llm.lastSystem, "Keep answers short and cheerful.")
	assert.Equal(t, "whats the gate code", f.llm.lastUser)

	require.Len(t, f.conversations.appended, 1)
	record := f.conversations.appended[0]
	assert.Equal(t, uint(7), record.AccountID)
	assert.Equal(t, uint(3), record.RecipientID)
	assert.Equal(t, "+15550100", record.PhoneNumber)
	assert.Equal(t, "whats the gate code", record.IncomingMessage)
	assert.Equal(t, "The gate code is 4521.", record.Response)
	assert.Equal(t, model.StringList{"Gate Code"}, record.ContentSent)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, uint(7), f.publisher.events[0].AccountID)
	assert.Equal(t, "The gate code is 4521.", f.publisher.events[0].Response)
}

func TestHandleIncomingMessage_ModelFailureGetsFallback(t *testing.T) {
	f := newSMSFixture()
	f.llm.reply = ""
	f.llm.err = errors.New("upstream timeout")

	reply, ok := f.service().HandleIncomingMessage(context.Background(), "+15550100", "whats the gate code")

	assert.True(t, ok)
	assert.Equal(t, FallbackReply, reply)

	// The exchange is still audited with the substituted reply.
	require.Len(t, f.conversations.appended, 1)
	assert.Equal(t, FallbackReply, f.conversations.appended[0].Response)
}

func TestHandleIncomingMessage_EmptyCompletionSubstituted(t *testing.T) {
	f := newSMSFixture()
	f.llm.reply = "   \n"

	reply, ok := f.service().HandleIncomingMessage(context.Background(), "+15550100", "whats the gate code")

	assert.True(t, ok)
	assert.Equal(t, emptyCompletionReply, reply)
}

func TestHandleIncomingMessage_KnowledgeFailureForcesOpenMode(t *testing.T) {
	f := newSMSFixture()
	f.knowledge.snapshot = nil
	f.knowledge.err = errors.New("redis and mysql both down")
	f.llm.reply = "Hello! How can I help today?"

	reply, ok := f.service().HandleIncomingMessage(context.Background(), "+15550100", "whats the gate code")

	assert.True(t, ok)
	assert.Equal(t, "Hello! How can I help today?", reply)
	assert.Equal(t, 1, f.llm.calls)
	assert.Contains(t, f.llm.lastSystem, "doesn't have specific stored information")
	assert.NotContains(t, f.llm.lastSystem, "VERIFIED INFORMATION FROM DATABASE:")
}

func TestHandleIncomingMessage_AppendFailureStillReplies(t *testing.T) {
	f := newSMSFixture()
	f.conversations.appendErr = errors.New("mysql write failed")

	reply, ok := f.service().HandleIncomingMessage(context.Background(), "+15550100", "whats the gate code")

	assert.True(t, ok)
	assert.Equal(t, "The gate code is 4521.", reply)
	// No persisted record means no downstream event either.
	assert.Empty(t, f.publisher.events)
}

func TestHandleIncomingMessage_PublishFailureStillReplies(t *testing.T) {
	f := newSMSFixture()
	f.publisher.err = errors.New("kafka unreachable")

	reply, ok := f.service().HandleIncomingMessage(context.Background(), "+15550100", "whats the gate code")

	assert.True(t, ok)
	assert.Equal(t, "The gate code is 4521.", reply)
	require.Len(t, f.conversations.appended, 1)
}

func TestHandleIncomingMessage_ToneLookupFailureUsesDefault(t *testing.T) {
	f := newSMSFixture()
	f.caregivers.caregiver = nil
	f.caregivers.err = errors.New("caregiver lookup failed")
	f.cfg.DefaultTone = "Speak plainly and kindly."

	_, ok := f.service().HandleIncomingMessage(context.Background(), "+15550100", "whats the gate code")

	assert.True(t, ok)
	assert.Contains(t, f.llm.lastSystem, "Speak plainly and kindly.")
}

func TestHandleIncomingMessage_BlankBodyStillAnswered(t *testing.T) {
	f := newSMSFixture()
	f.llm.reply = "Hi June! Is everything okay?"

	reply, ok := f.service().HandleIncomingMessage(context.Background(), "+15550100", "")

	// A blank body from a known sender still gets a reply, in open mode.
	assert.True(t, ok)
	assert.Equal(t, "Hi June! Is everything okay?", reply)
	assert.NotContains(t, f.llm.lastSystem, "VERIFIED INFORMATION FROM DATABASE:")
}
