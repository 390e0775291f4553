package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lotto/domain/entities"
	"lotto/domain/testhelpers"
)

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates a client with zero balance", func(t *testing.T) {
		userRepo := new(testhelpers.MockUserRepository)
		publisher := new(testhelpers.MockEventPublisher)
		service := NewAuthService(userRepo, publisher)

		userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, nil)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Email == "alice@example.com" &&
				u.Username == "alice" &&
				u.Role == entities.RoleClient &&
				u.BalanceILS == 0 &&
				u.PasswordHash != "s3cret"
		})).Return(nil)
		publisher.On("Publish", mock.Anything).Return(nil)

		user, err := service.Register(context.Background(), "alice@example.com", "alice", "s3cret")
		require.NoError(t, err)

		// The stored hash must verify against the original password.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(testhelpers.MockUserRepository)
		publisher := new(testhelpers.MockEventPublisher)
		service := NewAuthService(userRepo, publisher)

		userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&entities.User{Email: "alice@example.com"}, nil)

		_, err := service.Register(context.Background(), "alice@example.com", "alice", "s3cret")
		assert.ErrorIs(t, err, ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &entities.User{Email: "alice@example.com", PasswordHash: string(hash)}

	t.Run("valid credentials", func(t *testing.T) {
		userRepo := new(testhelpers.MockUserRepository)
		service := NewAuthService(userRepo, new(testhelpers.MockEventPublisher))

		userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)

		user, err := service.Login(context.Background(), "alice@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(testhelpers.MockUserRepository)
		service := NewAuthService(userRepo, new(testhelpers.MockEventPublisher))

		userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)

		_, err := service.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(testhelpers.MockUserRepository)
		service := NewAuthService(userRepo, new(testhelpers.MockEventPublisher))

		userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

		_, err := service.Login(context.Background(), "nobody@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
