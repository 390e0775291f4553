package services

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"
)

var (
	// ErrEmailTaken is returned when registering with an email that exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login. It deliberately
	// does not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// authService implements registration and credential verification
type authService struct {
	userRepo       interfaces.UserRepository
	eventPublisher interfaces.EventPublisher
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo interfaces.UserRepository, eventPublisher interfaces.EventPublisher) interfaces.AuthService {
	return &authService{
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
	}
}

// Register creates a new client account with a zero balance
func (s *authService) Register(ctx context.Context, email, username, password string) (*entities.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         entities.RoleClient,
		BalanceILS:   0,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	event := events.UserCreatedEvent{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).WithField("userID", user.ID).Error("Failed to publish user created event")
	}

	return user, nil
}

// Login verifies credentials and returns the user
func (s *authService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
