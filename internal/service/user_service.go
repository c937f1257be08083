package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "participa/internal/errors"
	"participa/internal/model"
	"participa/internal/repository"
)

// UserUpdate carries optional admin-editable fields; nil fields are left alone.
type UserUpdate struct {
	FullName     *string
	Email        *string
	Neighborhood *string
	Password     *string
	Active       *bool
	Role         *string
}

// UserService handles the admin-facing user directory.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListFiltered(ctx context.Context, barrio, rol string) ([]model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*model.User, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) ListFiltered(ctx context.Context, barrio, rol string) ([]model.User, error) {
	users, err := s.userRepo.ListFiltered(ctx, barrio, rol)
	if err != nil {
		return nil, fmt.Errorf("list filtered users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if update.FullName != nil {
		user.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.Neighborhood != nil {
		if !model.ValidNeighborhood(*update.Neighborhood) {
			return nil, apperrors.NewValidationError("barrio %q no es valido", *update.Neighborhood)
		}
		user.Neighborhood = *update.Neighborhood
	}
	if update.Role != nil {
		if *update.Role != model.RoleCitizen && *update.Role != model.RoleAdmin {
			return nil, apperrors.NewValidationError("rol %q no es valido", *update.Role)
		}
		user.Role = *update.Role
	}
	if update.Active != nil {
		user.Active = *update.Active
	}
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeactivateUser soft-deletes an account. The row, its votes and its comments
// all remain; historical votes keep counting in stats.
func (s *userService) DeactivateUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user.Active = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("deactivate user: %w", err)
	}
	return user, nil
}
