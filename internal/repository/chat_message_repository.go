package repository

import (
	"fmt"

	"gorm.io/gorm"

	"aarogya-ai/internal/model"
)

type ChatMessageRepository struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) *ChatMessageRepository {
	return &ChatMessageRepository{db: db}
}

func (r *ChatMessageRepository) Create(message *model.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("create chat message failed: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's messages ordered oldest-first, capped at
// limit for history replay.
func (r *ChatMessageRepository) ListByOwner(ownerEmail string, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var messages []model.ChatMessage
	if err := r.db.Where("owner_email = ?", ownerEmail).
		Order("timestamp ASC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list chat messages failed: %w", err)
	}
	return messages, nil
}
