package app

import (
	"aarogya-ai/internal/model"
	"aarogya-ai/internal/repository"
)

type AdminService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
}

func NewAdminService(userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository) *AdminService {
	return &AdminService{userRepo: userRepo, sessionRepo: sessionRepo}
}

func (s *AdminService) ListUsers(admin *model.User) ([]model.User, error) {
	if admin.UserType != model.UserTypeAdmin {
		return nil, ErrForbidden
	}
	return s.userRepo.ListAll(1000)
}

// DeleteUser removes a user and revokes their sessions. Admins cannot
// delete their own account.
func (s *AdminService) DeleteUser(admin *model.User, userID uint) error {
	if admin.UserType != model.UserTypeAdmin {
		return ErrForbidden
	}
	if userID == 0 {
		return ErrInvalidInput
	}
	if admin.ID == userID {
		return ErrInvalidInput
	}

	deleted, err := s.userRepo.DeleteByID(userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return s.sessionRepo.DeleteByUserID(userID)
}
