package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"participa/internal/auth"
	apperrors "participa/internal/errors"
	"participa/internal/mail"
	"participa/internal/model"
	"participa/internal/repository"
)

const (
	bcryptCost       = 10
	resetTokenExpiry = time.Hour
)

var dniPattern = regexp.MustCompile(`^\d{7,8}$`)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("credenciales invalidas")
	// ErrUserAlreadyExists is returned when email or DNI is already registered.
	ErrUserAlreadyExists = errors.New("ya existe un usuario con ese email o DNI")
	// ErrInvalidResetToken is returned when a password reset token is unknown or expired.
	ErrInvalidResetToken = errors.New("token invalido o expirado")
)

// RegisterInput carries the fields needed to create a citizen account.
type RegisterInput struct {
	FullName     string
	DNI          string
	Email        string
	Neighborhood string
	Password     string
}

// AuthService handles registration, login and credential lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	mailer     mail.Mailer
	baseURL    string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	mailer mail.Mailer,
	baseURL string,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		mailer:     mailer,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Register creates a new citizen account and returns it with a signed token.
// Email and DNI uniqueness is checked up front for a friendly message, but
// the unique indexes remain the authoritative guard against races.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DNI = strings.TrimSpace(input.DNI)
	input.FullName = strings.TrimSpace(input.FullName)

	if input.FullName == "" || input.DNI == "" || input.Email == "" || input.Neighborhood == "" || input.Password == "" {
		return nil, "", apperrors.NewValidationError("todos los campos son requeridos: nombreCompleto, dni, email, barrio, password")
	}
	if len(input.FullName) < 2 || len(input.FullName) > 100 {
		return nil, "", apperrors.NewValidationError("el nombre debe tener entre 2 y 100 caracteres")
	}
	if !dniPattern.MatchString(input.DNI) {
		return nil, "", apperrors.NewValidationError("el DNI debe tener entre 7 y 8 digitos")
	}
	if !model.ValidNeighborhood(input.Neighborhood) {
		return nil, "", apperrors.NewValidationError("barrio %q no es valido", input.Neighborhood)
	}
	if len(input.Password) < 6 {
		return nil, "", apperrors.NewValidationError("la contrasena debe tener al menos 6 caracteres")
	}

	existing, err := s.userRepo.FindByEmailOrDNI(ctx, input.Email, input.DNI)
	if err == nil && existing != nil {
		return nil, "", ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FullName:     input.FullName,
		DNI:          input.DNI,
		Email:        input.Email,
		Neighborhood: input.Neighborhood,
		PasswordHash: string(hashed),
		Role:         model.RoleCitizen,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrUserAlreadyExists
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates an active account and returns it with a signed token.
// Deactivated accounts cannot log in.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apperrors.NewValidationError("email y contrasena son requeridos")
	}

	user, err := s.userRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Logout adds the token's ID to the invalidation set for the remainder of its
// validity window.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.tokenStore.BlacklistToken(ctx, claims.ID, claims.RemainingValidity())
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and applies the strength
// policy before rehashing.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	if current == "" || newPassword == "" {
		return apperrors.NewValidationError("todos los campos son requeridos")
	}
	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperrors.NewValidationError("la contrasena actual es incorrecta")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)) == nil {
		return apperrors.NewValidationError("la nueva contrasena debe ser diferente a la actual")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// RequestPasswordReset stores a hashed one-hour reset token and mails the raw
// token to the account. Unknown emails get the same success response so the
// endpoint cannot be used to probe for accounts.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperrors.NewValidationError("el email es requerido")
	}

	user, err := s.userRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)
	expiry := time.Now().Add(resetTokenExpiry)

	user.ResetTokenHash = hashResetToken(token)
	user.ResetTokenExp = &expiry
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		// Undo so a token that was never delivered cannot linger.
		user.ResetTokenHash = ""
		user.ResetTokenExp = nil
		_ = s.userRepo.Update(ctx, user)
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return apperrors.NewValidationError("token y nueva contrasena son requeridos")
	}
	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByResetToken(ctx, hashResetToken(token), time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("find reset token: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	user.ResetTokenHash = ""
	user.ResetTokenExp = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// validatePasswordStrength enforces: at least 8 characters with upper, lower,
// digit and special character.
func validatePasswordStrength(password string) error {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if len(password) < 8 || !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return apperrors.NewValidationError(
			"la contrasena debe tener al menos 8 caracteres, una mayuscula, una minuscula, un numero y un caracter especial")
	}
	return nil
}
