package app

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"aarogya-ai/internal/model"
	"aarogya-ai/internal/pkg/sessiontoken"
	"aarogya-ai/internal/repository"
)

type AuthService struct {
	userRepo      *repository.UserRepository
	sessionRepo   *repository.SessionRepository
	sessionSecret string
	sessionTTL    time.Duration
}

type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	UserType  string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	sessionSecret string,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
	}
}

func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	password := strings.TrimSpace(input.Password)

	if email == "" || firstName == "" || lastName == "" || len(password) < 8 {
		return nil, ErrInvalidInput
	}
	if !model.ValidUserType(input.UserType) {
		return nil, ErrInvalidInput
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		UserType:     input.UserType,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.createSession(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := s.createSession(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Logout revokes the session row backing the token. Unknown tokens are a
// no-op so logout is idempotent.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(token)
}

// Authenticate resolves a session-cookie token to its user. The token must
// carry a valid signature, reference a live (non-revoked) session row that
// has not expired, and the user must still exist.
func (s *AuthService) Authenticate(token string) (*model.User, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}
	if _, err := sessiontoken.Parse(s.sessionSecret, token); err != nil {
		return nil, ErrSessionInvalid
	}

	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionInvalid
	}

	now := time.Now()
	if session.Expired(now) {
		_ = s.sessionRepo.DeleteByToken(token)
		return nil, ErrSessionInvalid
	}
	_ = s.sessionRepo.TouchLastActive(session.ID, now)

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionInvalid
	}
	return user, nil
}

func (s *AuthService) createSession(user *model.User) (string, error) {
	token, err := sessiontoken.Generate(s.sessionSecret, s.sessionTTL, user.ID, user.UserType)
	if err != nil {
		return "", err
	}

	now := time.Now()
	session := &model.UserSession{
		Token:      token,
		UserID:     user.ID,
		UserType:   user.UserType,
		LastActive: now,
		ExpiresAt:  now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return "", err
	}
	return token, nil
}
