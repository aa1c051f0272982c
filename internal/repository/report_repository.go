package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"aarogya-ai/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(report *model.Report) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("create report failed: %w", err)
	}
	return nil
}

func (r *ReportRepository) GetByID(id uint) (*model.Report, error) {
	var report model.Report
	if err := r.db.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query report by id failed: %w", err)
	}
	return &report, nil
}

func (r *ReportRepository) ListByOwner(ownerEmail string, limit int) ([]model.Report, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	var reports []model.Report
	if err := r.db.Where("owner_email = ?", ownerEmail).
		Order("upload_date DESC").Limit(limit).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("list reports failed: %w", err)
	}
	return reports, nil
}
