package services

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/auth"
	"backoffice/internal/models"
	"backoffice/internal/redis"
	"backoffice/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is disabled")
)

// SessionStore is the subset of the redis client the user service needs.
type SessionStore interface {
	SetSession(sessionID string, data *redis.SessionData, ttl time.Duration) error
	DeleteSession(sessionID string) error
}

type UserService interface {
	CreateUser(user *models.User, password string) error
	GetUserByID(id uint) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	SetPassword(id uint, password string) error
	DeleteUser(id uint) error
	Login(username, password string) (*models.User, string, error)
	Logout(sessionID string) error
}

type userService struct {
	userRepo   repository.UserRepository
	sessions   SessionStore
	jwtSecret  []byte
	sessionTTL time.Duration
}

func NewUserService(userRepo repository.UserRepository, sessions SessionStore, jwtSecret []byte, sessionTTL time.Duration) UserService {
	return &userService{
		userRepo:   userRepo,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

func (s *userService) CreateUser(user *models.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)
	return s.userRepo.Create(user)
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) UpdateUser(user *models.User) error {
	return s.userRepo.Update(user)
}

func (s *userService) SetPassword(id uint, password string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)
	return s.userRepo.Update(user)
}

func (s *userService) DeleteUser(id uint) error {
	return s.userRepo.Delete(id)
}

// Login verifies the password, opens a redis-backed session and returns
// a signed token carrying the session id.
func (s *userService) Login(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrUserInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	role := ""
	if user.Role != nil {
		role = user.Role.Name
	}

	sessionID := fmt.Sprintf("%d_%d", user.ID, time.Now().UnixNano())
	err = s.sessions.SetSession(sessionID, &redis.SessionData{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      role,
		CreatedAt: time.Now(),
	}, s.sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID, role, sessionID, s.sessionTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) Logout(sessionID string) error {
	return s.sessions.DeleteSession(sessionID)
}
