package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"aarogya-ai/internal/model"
)

// HistoryCache keeps each owner's recent chat history in redis. A short-lived
// dirty marker is set whenever a new turn lands, so readers fall back to the
// database until the marker expires and the cache is repopulated.
type HistoryCache struct {
	client         *redisv9.Client
	historyTTL     time.Duration
	dirtyMarkerTTL time.Duration
}

func NewHistoryCache(client *redisv9.Client, historyTTL, dirtyMarkerTTL time.Duration) *HistoryCache {
	if historyTTL <= 0 {
		historyTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &HistoryCache{
		client:         client,
		historyTTL:     historyTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *HistoryCache) GetHistory(ctx context.Context, ownerEmail string) ([]model.ChatMessage, bool, error) {
	raw, err := c.client.Get(ctx, c.historyKey(ownerEmail)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get history failed: %w", err)
	}

	var messages []model.ChatMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached history failed: %w", err)
	}
	return messages, true, nil
}

func (c *HistoryCache) SetHistory(ctx context.Context, ownerEmail string, messages []model.ChatMessage) error {
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal history cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.historyKey(ownerEmail), payload, c.historyTTL).Err(); err != nil {
		return fmt.Errorf("redis set history failed: %w", err)
	}
	return nil
}

func (c *HistoryCache) DeleteHistory(ctx context.Context, ownerEmail string) error {
	if err := c.client.Del(ctx, c.historyKey(ownerEmail)).Err(); err != nil {
		return fmt.Errorf("redis delete history failed: %w", err)
	}
	return nil
}

func (c *HistoryCache) MarkDirty(ctx context.Context, ownerEmail string) error {
	if err := c.client.Set(ctx, c.dirtyKey(ownerEmail), "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis mark dirty failed: %w", err)
	}
	return nil
}

func (c *HistoryCache) IsDirty(ctx context.Context, ownerEmail string) (bool, error) {
	_, err := c.client.Get(ctx, c.dirtyKey(ownerEmail)).Result()
	if err == redisv9.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis check dirty failed: %w", err)
	}
	return true, nil
}

func (c *HistoryCache) historyKey(ownerEmail string) string {
	return "chat:history:" + ownerEmail
}

func (c *HistoryCache) dirtyKey(ownerEmail string) string {
	return "chat:history:dirty:" + ownerEmail
}
