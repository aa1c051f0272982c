package model

import "time"

// ChatMessage records one chat turn. Rows are append-only and replayed
// ordered by timestamp.
type ChatMessage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OwnerEmail string    `gorm:"size:128;not null;index" json:"owner_email"`
	UserQuery  string    `gorm:"type:text;not null" json:"user_query"`
	AIResponse string    `gorm:"type:text;not null" json:"ai_response"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}
