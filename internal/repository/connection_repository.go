package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"aarogya-ai/internal/model"
)

type ConnectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

func (r *ConnectionRepository) Create(request *model.ConnectionRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		return fmt.Errorf("create connection request failed: %w", err)
	}
	return nil
}

// GetActive returns the pending or accepted request between the pair, if any.
func (r *ConnectionRepository) GetActive(patientEmail, doctorEmail string) (*model.ConnectionRequest, error) {
	var request model.ConnectionRequest
	err := r.db.Where(
		"patient_email = ? AND doctor_email = ? AND status IN ?",
		patientEmail, doctorEmail,
		[]string{model.ConnectionPending, model.ConnectionAccepted},
	).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query connection request failed: %w", err)
	}
	return &request, nil
}

func (r *ConnectionRepository) ListPendingByDoctor(doctorEmail string, limit int) ([]model.ConnectionRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	var requests []model.ConnectionRequest
	if err := r.db.Where("doctor_email = ? AND status = ?", doctorEmail, model.ConnectionPending).
		Order("request_date ASC").Limit(limit).Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("list pending requests failed: %w", err)
	}
	return requests, nil
}

// AcceptPending flips a pending request owned by the doctor to accepted and
// returns the updated row; nil when no such pending request exists.
func (r *ConnectionRepository) AcceptPending(id uint, doctorEmail string) (*model.ConnectionRequest, error) {
	result := r.db.Model(&model.ConnectionRequest{}).
		Where("id = ? AND doctor_email = ? AND status = ?", id, doctorEmail, model.ConnectionPending).
		Update("status", model.ConnectionAccepted)
	if result.Error != nil {
		return nil, fmt.Errorf("accept connection request failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var request model.ConnectionRequest
	if err := r.db.First(&request, id).Error; err != nil {
		return nil, fmt.Errorf("reload connection request failed: %w", err)
	}
	return &request, nil
}

func (r *ConnectionRepository) ListAcceptedPatients(doctorEmail string) ([]string, error) {
	var emails []string
	if err := r.db.Model(&model.ConnectionRequest{}).
		Where("doctor_email = ? AND status = ?", doctorEmail, model.ConnectionAccepted).
		Pluck("patient_email", &emails).Error; err != nil {
		return nil, fmt.Errorf("list connected patients failed: %w", err)
	}
	return emails, nil
}

// IsConnected reports whether an accepted connection exists between the pair.
func (r *ConnectionRepository) IsConnected(doctorEmail, patientEmail string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.ConnectionRequest{}).
		Where("doctor_email = ? AND patient_email = ? AND status = ?",
			doctorEmail, patientEmail, model.ConnectionAccepted).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check connection failed: %w", err)
	}
	return count > 0, nil
}
