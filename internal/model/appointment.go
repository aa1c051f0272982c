package model

import "time"

const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:256;not null" json:"title"`
	AppointmentTime time.Time `gorm:"not null;index" json:"appointment_time"`
	Status          string    `gorm:"size:16;not null;index" json:"status"`
	MeetingLink     string    `gorm:"size:512" json:"meeting_link"`
	PatientEmail    string    `gorm:"size:128;not null;index" json:"patient_email"`
	DoctorEmail     string    `gorm:"size:128;not null;index" json:"doctor_email"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ValidAppointmentStatus(s string) bool {
	return s == AppointmentScheduled || s == AppointmentCompleted || s == AppointmentCancelled
}
