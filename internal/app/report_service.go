package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aarogya-ai/internal/model"
	"aarogya-ai/internal/rag"
	"aarogya-ai/internal/repository"
)

// IndexJobPublisher dispatches report-indexing work to the background
// worker via the durable queue.
type IndexJobPublisher interface {
	Publish(ctx context.Context, job rag.IndexJob) error
}

type ReportService struct {
	reportRepo *repository.ReportRepository
	publisher  IndexJobPublisher
	logger     zerolog.Logger
}

type CreateReportInput struct {
	OwnerEmail  string
	Title       string
	Description string
	ReportType  string
	// Content is the indexable text; callers default it to Description
	// unless richer text (e.g. extracted from a PDF) is available.
	Content string
}

func NewReportService(
	reportRepo *repository.ReportRepository,
	publisher IndexJobPublisher,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Create stores the report and, once it is durably saved, enqueues indexing
// of its text. The caller never waits on chunking or embedding; a report
// with no text is stored but never indexed.
func (s *ReportService) Create(ctx context.Context, input CreateReportInput) (*model.Report, error) {
	title := strings.TrimSpace(input.Title)
	reportType := strings.TrimSpace(input.ReportType)
	if input.OwnerEmail == "" || title == "" || reportType == "" {
		return nil, ErrInvalidInput
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		content = strings.TrimSpace(input.Description)
	}

	report := &model.Report{
		OwnerEmail:  input.OwnerEmail,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Content:     content,
		ReportType:  reportType,
		UploadDate:  time.Now().UTC(),
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}

	if content != "" {
		job := rag.IndexJob{
			ReportID:   strconv.FormatUint(uint64(report.ID), 10),
			OwnerEmail: report.OwnerEmail,
			Title:      report.Title,
			ReportType: report.ReportType,
			UploadDate: report.UploadDate.Format(time.RFC3339),
			Text:       content,
		}
		// Fire-and-forget: a publish failure leaves the report saved but
		// unsearchable until a future re-index.
		if err := s.publisher.Publish(ctx, job); err != nil {
			s.logger.Error().Err(err).
				Str("report_id", job.ReportID).
				Msg("enqueue index job failed")
		}
	}

	return report, nil
}

// GetOwn fetches one report, masking other owners' reports as not found.
func (s *ReportService) GetOwn(ownerEmail string, reportID uint) (*model.Report, error) {
	if ownerEmail == "" || reportID == 0 {
		return nil, ErrInvalidInput
	}
	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		return nil, err
	}
	if report == nil || report.OwnerEmail != ownerEmail {
		return nil, ErrNotFound
	}
	return report, nil
}

func (s *ReportService) ListOwn(ownerEmail string) ([]model.Report, error) {
	if ownerEmail == "" {
		return nil, ErrInvalidInput
	}
	return s.reportRepo.ListByOwner(ownerEmail, 100)
}
