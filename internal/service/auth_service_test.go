package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"participa/internal/auth"
	apperrors "participa/internal/errors"
	"participa/internal/model"
)

func newTestAuthService(userRepo *MockUserRepository, tokenStore *MockTokenStore, mailer *MockMailer) AuthService {
	return NewAuthService(userRepo, auth.NewJWTService("test-secret"), tokenStore, mailer, "http://localhost:3000")
}

func TestAuthService_Register(t *testing.T) {
	validInput := RegisterInput{
		FullName:     "Maria Lopez",
		DNI:          "30123456",
		Email:        "maria@example.com",
		Neighborhood: "Centro",
		Password:     "secreta1",
	}

	tests := []struct {
		name           string
		input          RegisterInput
		setupMock      func(*MockUserRepository)
		expectedError  error
		expectValidErr bool
	}{
		{
			name:  "successful registration",
			input: validInput,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmailOrDNI", mock.Anything, "maria@example.com", "30123456").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = uuid.New()
				})
			},
		},
		{
			name: "email is normalized to lowercase",
			input: RegisterInput{
				FullName:     "Maria Lopez",
				DNI:          "30123456",
				Email:        "  MARIA@Example.COM ",
				Neighborhood: "Centro",
				Password:     "secreta1",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmailOrDNI", mock.Anything, "maria@example.com", "30123456").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = uuid.New()
				})
			},
		},
		{
			name:  "email or DNI already registered",
			input: validInput,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmailOrDNI", mock.Anything, "maria@example.com", "30123456").
					Return(&model.User{Email: "maria@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
		{
			name:  "race on insert surfaces as already exists",
			input: validInput,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmailOrDNI", mock.Anything, "maria@example.com", "30123456").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: ErrUserAlreadyExists,
		},
		{
			name: "malformed DNI",
			input: RegisterInput{
				FullName:     "Maria Lopez",
				DNI:          "12AB56",
				Email:        "maria@example.com",
				Neighborhood: "Centro",
				Password:     "secreta1",
			},
			setupMock:      func(m *MockUserRepository) {},
			expectValidErr: true,
		},
		{
			name: "unknown neighborhood",
			input: RegisterInput{
				FullName:     "Maria Lopez",
				DNI:          "30123456",
				Email:        "maria@example.com",
				Neighborhood: "Lejano",
				Password:     "secreta1",
			},
			setupMock:      func(m *MockUserRepository) {},
			expectValidErr: true,
		},
		{
			name: "password too short",
			input: RegisterInput{
				FullName:     "Maria Lopez",
				DNI:          "30123456",
				Email:        "maria@example.com",
				Neighborhood: "Centro",
				Password:     "abc",
			},
			setupMock:      func(m *MockUserRepository) {},
			expectValidErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo, new(MockTokenStore), new(MockMailer))
			user, token, err := service.Register(context.Background(), tt.input)

			switch {
			case tt.expectValidErr:
				var validationErr *apperrors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Nil(t, user)
			case tt.expectedError != nil:
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			default:
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, "maria@example.com", user.Email)
				assert.Equal(t, model.RoleCitizen, user.Role)
				assert.True(t, user.Active)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secreta1"), bcryptCost)
	activeUser := &model.User{
		ID:           uuid.New(),
		Email:        "maria@example.com",
		PasswordHash: string(hashed),
		Role:         model.RoleCitizen,
		Active:       true,
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "maria@example.com",
			password: "secreta1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindActiveByEmail", mock.Anything, "maria@example.com").Return(activeUser, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "maria@example.com",
			password: "incorrecta",
			setupMock: func(m *MockUserRepository) {
				m.On("FindActiveByEmail", mock.Anything, "maria@example.com").Return(activeUser, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "unknown or deactivated account",
			email:    "baja@example.com",
			password: "secreta1",
			setupMock: func(m *MockUserRepository) {
				// FindActiveByEmail filters on active, so a deactivated
				// account is indistinguishable from a missing one.
				m.On("FindActiveByEmail", mock.Anything, "baja@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo, new(MockTokenStore), new(MockMailer))
			user, token, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("BlacklistToken", mock.Anything, "token-jti", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= auth.TokenExpiry
	})).Return(nil)

	service := newTestAuthService(new(MockUserRepository), mockTokenStore, new(MockMailer))

	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "token-jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	err := service.Logout(context.Background(), claims)

	assert.NoError(t, err)
	mockTokenStore.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	userID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Actual123!"), bcryptCost)

	freshUser := func() *model.User {
		return &model.User{ID: userID, PasswordHash: string(hashed), Active: true}
	}

	t.Run("successful change", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindActiveByID", mock.Anything, userID).Return(freshUser(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := newTestAuthService(mockRepo, new(MockTokenStore), new(MockMailer))
		err := service.ChangePassword(context.Background(), userID, "Actual123!", "Nueva456#")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindActiveByID", mock.Anything, userID).Return(freshUser(), nil)

		service := newTestAuthService(mockRepo, new(MockTokenStore), new(MockMailer))
		err := service.ChangePassword(context.Background(), userID, "Equivocada1!", "Nueva456#")

		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("new password equals current", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindActiveByID", mock.Anything, userID).Return(freshUser(), nil)

		service := newTestAuthService(mockRepo, new(MockTokenStore), new(MockMailer))
		err := service.ChangePassword(context.Background(), userID, "Actual123!", "Actual123!")

		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"meets all requirements", "Segura12!", true},
		{"too short", "Ab1!", false},
		{"missing uppercase", "segura12!", false},
		{"missing lowercase", "SEGURA12!", false},
		{"missing digit", "SeguraAA!", false},
		{"missing special character", "Segura123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				var validationErr *apperrors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
			}
		})
	}
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	t.Run("known account gets a token and a mail", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Email: "maria@example.com", Active: true}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindActiveByEmail", mock.Anything, "maria@example.com").Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		mockMailer := new(MockMailer)
		mockMailer.On("SendPasswordReset", mock.Anything, "maria@example.com", mock.MatchedBy(func(link string) bool {
			return len(link) > 0
		})).Return(nil)

		service := newTestAuthService(mockRepo, new(MockTokenStore), mockMailer)
		err := service.RequestPasswordReset(context.Background(), "maria@example.com")

		assert.NoError(t, err)
		assert.NotEmpty(t, user.ResetTokenHash)
		assert.NotNil(t, user.ResetTokenExp)
		mockRepo.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
	})

	t.Run("unknown email gets the same silent success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindActiveByEmail", mock.Anything, "nadie@example.com").Return(nil, gorm.ErrRecordNotFound)

		mockMailer := new(MockMailer)

		service := newTestAuthService(mockRepo, new(MockTokenStore), mockMailer)
		err := service.RequestPasswordReset(context.Background(), "nadie@example.com")

		assert.NoError(t, err)
		mockMailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("invalid or expired token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByResetToken", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Return(nil, gorm.ErrRecordNotFound)

		service := newTestAuthService(mockRepo, new(MockTokenStore), new(MockMailer))
		err := service.ResetPassword(context.Background(), "deadbeef", "Nueva456#")

		assert.Equal(t, ErrInvalidResetToken, err)
	})

	t.Run("valid token sets the new password and clears the token", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Email: "maria@example.com", ResetTokenHash: "stored-hash", Active: true}
		exp := time.Now().Add(30 * time.Minute)
		user.ResetTokenExp = &exp

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByResetToken", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		service := newTestAuthService(mockRepo, new(MockTokenStore), new(MockMailer))
		err := service.ResetPassword(context.Background(), "deadbeef", "Nueva456#")

		assert.NoError(t, err)
		assert.Empty(t, user.ResetTokenHash)
		assert.Nil(t, user.ResetTokenExp)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Nueva456#")))
		mockRepo.AssertExpectations(t)
	})
}
