package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleCitizen = "ciudadano"
	RoleAdmin   = "admin"
)

// User represents a registered citizen or administrator.
// Users are never hard-deleted; deactivation flips Active to false and the
// unique indexes on DNI and Email keep covering deactivated rows.
type User struct {
	ID             uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	FullName       string     `json:"nombreCompleto" gorm:"size:100;not null"`
	DNI            string     `json:"dni" gorm:"uniqueIndex;size:8;not null"`
	Email          string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Neighborhood   string     `json:"barrio" gorm:"size:50;not null"`
	PasswordHash   string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role           string     `json:"rol" gorm:"size:20;not null;default:'ciudadano'"`
	Active         bool       `json:"activo" gorm:"not null;default:true"`
	ResetTokenHash string     `json:"-" gorm:"size:64"`
	ResetTokenExp  *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"fechaRegistro"`
	UpdatedAt      time.Time  `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
