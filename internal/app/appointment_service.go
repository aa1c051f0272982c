package app

import (
	"strings"
	"time"

	"aarogya-ai/internal/model"
	"aarogya-ai/internal/repository"
)

type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
}

type ScheduleAppointmentInput struct {
	Title           string
	AppointmentTime time.Time
	DoctorEmail     string
}

type UpdateAppointmentInput struct {
	Status      string
	MeetingLink *string
}

func NewAppointmentService(appointmentRepo *repository.AppointmentRepository) *AppointmentService {
	return &AppointmentService{appointmentRepo: appointmentRepo}
}

// Schedule lets a patient book an appointment with a doctor.
func (s *AppointmentService) Schedule(patient *model.User, input ScheduleAppointmentInput) (*model.Appointment, error) {
	if patient.UserType != model.UserTypePatient {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(input.Title)
	doctorEmail := strings.TrimSpace(strings.ToLower(input.DoctorEmail))
	if title == "" || doctorEmail == "" || input.AppointmentTime.IsZero() {
		return nil, ErrInvalidInput
	}

	appointment := &model.Appointment{
		Title:           title,
		AppointmentTime: input.AppointmentTime,
		Status:          model.AppointmentScheduled,
		PatientEmail:    patient.Email,
		DoctorEmail:     doctorEmail,
	}
	if err := s.appointmentRepo.Create(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Update lets the owning doctor change an appointment's status or meeting
// link.
func (s *AppointmentService) Update(doctor *model.User, appointmentID uint, input UpdateAppointmentInput) (*model.Appointment, error) {
	if doctor.UserType != model.UserTypeDoctor {
		return nil, ErrForbidden
	}
	if appointmentID == 0 {
		return nil, ErrInvalidInput
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" && input.MeetingLink == nil {
		return nil, ErrInvalidInput
	}
	if status != "" && !model.ValidAppointmentStatus(status) {
		return nil, ErrInvalidInput
	}

	appointment, err := s.appointmentRepo.GetByIDAndDoctor(appointmentID, doctor.Email)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}

	if status != "" {
		appointment.Status = status
	}
	if input.MeetingLink != nil {
		appointment.MeetingLink = *input.MeetingLink
	}
	if err := s.appointmentRepo.Update(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// List returns the caller's appointments: the patient side or the doctor
// side of the record, optionally narrowed by status.
func (s *AppointmentService) List(user *model.User, statusFilter string) ([]model.Appointment, error) {
	filter := repository.AppointmentFilter{}
	switch user.UserType {
	case model.UserTypePatient:
		filter.PatientEmail = user.Email
	case model.UserTypeDoctor:
		filter.DoctorEmail = user.Email
	default:
		return nil, ErrForbidden
	}

	statusFilter = strings.ToLower(strings.TrimSpace(statusFilter))
	if statusFilter != "" {
		if !model.ValidAppointmentStatus(statusFilter) {
			return nil, ErrInvalidInput
		}
		filter.Status = statusFilter
	}
	return s.appointmentRepo.ListFiltered(filter, 100)
}
