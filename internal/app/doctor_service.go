package app

import (
	"strings"

	"aarogya-ai/internal/model"
	"aarogya-ai/internal/repository"
)

type DoctorService struct {
	connectionRepo  *repository.ConnectionRepository
	reportRepo      *repository.ReportRepository
	appointmentRepo *repository.AppointmentRepository
}

func NewDoctorService(
	connectionRepo *repository.ConnectionRepository,
	reportRepo *repository.ReportRepository,
	appointmentRepo *repository.AppointmentRepository,
) *DoctorService {
	return &DoctorService{
		connectionRepo:  connectionRepo,
		reportRepo:      reportRepo,
		appointmentRepo: appointmentRepo,
	}
}

// ListPatients returns the emails of patients with an accepted connection
// to the doctor.
func (s *DoctorService) ListPatients(doctor *model.User) ([]string, error) {
	if doctor.UserType != model.UserTypeDoctor {
		return nil, ErrForbidden
	}
	return s.connectionRepo.ListAcceptedPatients(doctor.Email)
}

// PatientReports returns a connected patient's reports. Doctors without an
// accepted connection to the patient are rejected before any data access.
func (s *DoctorService) PatientReports(doctor *model.User, patientEmail string) ([]model.Report, error) {
	if doctor.UserType != model.UserTypeDoctor {
		return nil, ErrForbidden
	}
	patientEmail = strings.TrimSpace(strings.ToLower(patientEmail))
	if patientEmail == "" {
		return nil, ErrInvalidInput
	}

	connected, err := s.connectionRepo.IsConnected(doctor.Email, patientEmail)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, ErrForbidden
	}
	return s.reportRepo.ListByOwner(patientEmail, 100)
}

// PatientAppointments returns the doctor's own appointments with the given
// patient. The appointment rows already tie both parties together, so no
// connection check is needed here.
func (s *DoctorService) PatientAppointments(doctor *model.User, patientEmail string) ([]model.Appointment, error) {
	if doctor.UserType != model.UserTypeDoctor {
		return nil, ErrForbidden
	}
	patientEmail = strings.TrimSpace(strings.ToLower(patientEmail))
	if patientEmail == "" {
		return nil, ErrInvalidInput
	}

	return s.appointmentRepo.ListFiltered(repository.AppointmentFilter{
		DoctorEmail:  doctor.Email,
		PatientEmail: patientEmail,
	}, 100)
}
