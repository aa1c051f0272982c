package model

import "time"

const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
)

type ConnectionRequest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PatientEmail string    `gorm:"size:128;not null;index" json:"patient_email"`
	DoctorEmail  string    `gorm:"size:128;not null;index" json:"doctor_email"`
	Status       string    `gorm:"size:16;not null;index" json:"status"`
	RequestDate  time.Time `json:"request_date"`
}
