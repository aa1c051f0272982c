package model

import "time"

// UserSession backs the session cookie. The token itself is a signed JWT;
// keeping a row per session lets logout revoke it before expiry.
type UserSession struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Token      string    `gorm:"size:512;not null;uniqueIndex:idx_session_token,length:191" json:"-"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	UserType   string    `gorm:"size:16;not null" json:"user_type"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	ExpiresAt  time.Time `gorm:"index" json:"expires_at"`
}

func (s *UserSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
