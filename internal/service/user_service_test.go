package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "participa/internal/errors"
	"participa/internal/model"
)

func boolptr(b bool) *bool { return &b }

func TestUserService_UpdateUser(t *testing.T) {
	userID := uuid.New()

	existing := func() *model.User {
		return &model.User{
			ID:           userID,
			FullName:     "Maria Lopez",
			Email:        "maria@example.com",
			Neighborhood: "Centro",
			Role:         model.RoleCitizen,
			Active:       true,
		}
	}

	t.Run("promote to admin", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo)
		user, err := service.UpdateUser(context.Background(), userID, UserUpdate{
			Role: strptr(model.RoleAdmin),
		})

		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
		assert.True(t, user.IsAdmin())
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(existing(), nil)

		service := NewUserService(mockRepo)
		user, err := service.UpdateUser(context.Background(), userID, UserUpdate{
			Role: strptr("superadmin"),
		})

		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown neighborhood is rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(existing(), nil)

		service := NewUserService(mockRepo)
		_, err := service.UpdateUser(context.Background(), userID, UserUpdate{
			Neighborhood: strptr("Afuera"),
		})

		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("password is rehashed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo)
		user, err := service.UpdateUser(context.Background(), userID, UserUpdate{
			Password: strptr("NuevaClave1!"),
		})

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("NuevaClave1!")))
	})

	t.Run("duplicate email on update", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)

		service := NewUserService(mockRepo)
		user, err := service.UpdateUser(context.Background(), userID, UserUpdate{
			Email: strptr("tomado@example.com"),
		})

		assert.Equal(t, ErrUserAlreadyExists, err)
		assert.Nil(t, user)
	})

	t.Run("reactivate account", func(t *testing.T) {
		inactive := existing()
		inactive.Active = false

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(inactive, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo)
		user, err := service.UpdateUser(context.Background(), userID, UserUpdate{
			Active: boolptr(true),
		})

		assert.NoError(t, err)
		assert.True(t, user.Active)
	})
}

func TestUserService_DeactivateUser(t *testing.T) {
	userID := uuid.New()

	t.Run("marks the account inactive", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Active: true}, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return !u.Active
		})).Return(nil)

		service := NewUserService(mockRepo)
		user, err := service.DeactivateUser(context.Background(), userID)

		assert.NoError(t, err)
		assert.False(t, user.Active)
		mockRepo.AssertExpectations(t)
	})

	t.Run("user not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockRepo)
		user, err := service.DeactivateUser(context.Background(), userID)

		assert.Equal(t, apperrors.ErrUserNotFound, err)
		assert.Nil(t, user)
	})
}
