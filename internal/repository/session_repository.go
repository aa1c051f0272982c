package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"aarogya-ai/internal/model"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *model.UserSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByToken(token string) (*model.UserSession, error) {
	var session model.UserSession
	if err := r.db.Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query session by token failed: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) TouchLastActive(id uint, at time.Time) error {
	if err := r.db.Model(&model.UserSession{}).Where("id = ?", id).
		Update("last_active", at).Error; err != nil {
		return fmt.Errorf("touch session failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteByToken(token string) error {
	if err := r.db.Where("token = ?", token).Delete(&model.UserSession{}).Error; err != nil {
		return fmt.Errorf("delete session failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteByUserID(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&model.UserSession{}).Error; err != nil {
		return fmt.Errorf("delete sessions by user failed: %w", err)
	}
	return nil
}

// DeleteExpired clears sessions whose expiry has passed.
func (r *SessionRepository) DeleteExpired(now time.Time) error {
	if err := r.db.Where("expires_at < ?", now).Delete(&model.UserSession{}).Error; err != nil {
		return fmt.Errorf("delete expired sessions failed: %w", err)
	}
	return nil
}
