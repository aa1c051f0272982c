package app

import (
	"strings"
	"time"

	"aarogya-ai/internal/model"
	"aarogya-ai/internal/repository"
)

type ConnectionService struct {
	connectionRepo *repository.ConnectionRepository
}

func NewConnectionService(connectionRepo *repository.ConnectionRepository) *ConnectionService {
	return &ConnectionService{connectionRepo: connectionRepo}
}

// Request creates a pending connection from a patient to a doctor. A pair
// with an existing pending or accepted request is rejected.
func (s *ConnectionService) Request(patient *model.User, doctorEmail string) (*model.ConnectionRequest, error) {
	if patient.UserType != model.UserTypePatient {
		return nil, ErrForbidden
	}
	doctorEmail = strings.TrimSpace(strings.ToLower(doctorEmail))
	if doctorEmail == "" || doctorEmail == patient.Email {
		return nil, ErrInvalidInput
	}

	existing, err := s.connectionRepo.GetActive(patient.Email, doctorEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRequest
	}

	request := &model.ConnectionRequest{
		PatientEmail: patient.Email,
		DoctorEmail:  doctorEmail,
		Status:       model.ConnectionPending,
		RequestDate:  time.Now().UTC(),
	}
	if err := s.connectionRepo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *ConnectionService) ListPending(doctor *model.User) ([]model.ConnectionRequest, error) {
	if doctor.UserType != model.UserTypeDoctor {
		return nil, ErrForbidden
	}
	return s.connectionRepo.ListPendingByDoctor(doctor.Email, 100)
}

// Accept flips a pending request owned by the doctor to accepted.
func (s *ConnectionService) Accept(doctor *model.User, requestID uint) (*model.ConnectionRequest, error) {
	if doctor.UserType != model.UserTypeDoctor {
		return nil, ErrForbidden
	}
	if requestID == 0 {
		return nil, ErrInvalidInput
	}

	request, err := s.connectionRepo.AcceptPending(requestID, doctor.Email)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}
	return request, nil
}
