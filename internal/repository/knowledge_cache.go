package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"guardian-portal-go/internal/model"

	"github.com/go-redis/redis/v8"
)

// KnowledgeSnapshot is the cached form of an account's knowledge set.
type KnowledgeSnapshot struct {
	Categories   []model.Category    `json:"categories"`
	ContentItems []model.ContentItem `json:"contentItems"`
}

// KnowledgeCache caches per-account knowledge snapshots in Redis so that the
// SMS pipeline does not hit MySQL on every inbound message.
type KnowledgeCache interface {
	Get(ctx context.Context, accountID uint) (*KnowledgeSnapshot, error)
	Set(ctx context.Context, accountID uint, snapshot *KnowledgeSnapshot) error
	// Invalidate drops the cached snapshot; called after any dashboard write
	// to categories or content items.
	Invalidate(ctx context.Context, accountID uint) error
}

type redisKnowledgeCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewKnowledgeCache creates a Redis-backed KnowledgeCache.
func NewKnowledgeCache(redisClient *redis.Client) KnowledgeCache {
	return &redisKnowledgeCache{
		redisClient: redisClient,
		ttl:         5 * time.Minute,
	}
}

func knowledgeKey(accountID uint) string {
	return fmt.Sprintf("account:%d:knowledge", accountID)
}

func (c *redisKnowledgeCache) Get(ctx context.Context, accountID uint) (*KnowledgeSnapshot, error) {
	jsonData, err := c.redisClient.Get(ctx, knowledgeKey(accountID)).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get knowledge snapshot: %w", err)
	}
	var snapshot KnowledgeSnapshot
	if err := json.Unmarshal([]byte(jsonData), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal knowledge snapshot: %w", err)
	}
	return &snapshot, nil
}

func (c *redisKnowledgeCache) Set(ctx context.Context, accountID uint, snapshot *KnowledgeSnapshot) error {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal knowledge snapshot: %w", err)
	}
	if err := c.redisClient.Set(ctx, knowledgeKey(accountID), jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set knowledge snapshot: %w", err)
	}
	return nil
}

func (c *redisKnowledgeCache) Invalidate(ctx context.Context, accountID uint) error {
	return c.redisClient.Del(ctx, knowledgeKey(accountID)).Err()
}
