package model

import "time"

// Report is immutable after creation: no update or delete path exists.
// Content holds the indexable text (extracted from PDFs on upload,
// otherwise the description).
type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerEmail  string    `gorm:"size:128;not null;index" json:"owner_email"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Content     string    `gorm:"type:text" json:"-"`
	ReportType  string    `gorm:"size:64;not null" json:"report_type"`
	UploadDate  time.Time `gorm:"index" json:"upload_date"`
}
