package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"aarogya-ai/internal/model"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(appointment *model.Appointment) error {
	if err := r.db.Create(appointment).Error; err != nil {
		return fmt.Errorf("create appointment failed: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) GetByIDAndDoctor(id uint, doctorEmail string) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.db.Where("id = ? AND doctor_email = ?", id, doctorEmail).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query appointment failed: %w", err)
	}
	return &appointment, nil
}

func (r *AppointmentRepository) Update(appointment *model.Appointment) error {
	if err := r.db.Save(appointment).Error; err != nil {
		return fmt.Errorf("update appointment failed: %w", err)
	}
	return nil
}

// ListFiltered lists appointments matching the non-empty fields of the
// filter, soonest first.
type AppointmentFilter struct {
	PatientEmail string
	DoctorEmail  string
	Status       string
}

func (r *AppointmentRepository) ListFiltered(filter AppointmentFilter, limit int) ([]model.Appointment, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	query := r.db.Model(&model.Appointment{})
	if filter.PatientEmail != "" {
		query = query.Where("patient_email = ?", filter.PatientEmail)
	}
	if filter.DoctorEmail != "" {
		query = query.Where("doctor_email = ?", filter.DoctorEmail)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var appointments []model.Appointment
	if err := query.Order("appointment_time ASC").Limit(limit).Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("list appointments failed: %w", err)
	}
	return appointments, nil
}
