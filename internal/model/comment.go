package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentMaxLength caps comment content after trimming.
const CommentMaxLength = 500

// Comment is a free-text remark on a proposal. Only the authoring user may
// delete it; deactivating the author leaves existing comments in place.
type Comment struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID `json:"usuarioId" gorm:"type:char(36);not null;index"`
	ProposalID uuid.UUID `json:"propuestaId" gorm:"type:char(36);not null;index"`
	Content    string    `json:"contenido" gorm:"size:500;not null"`
	CreatedAt  time.Time `json:"fechaCreacion"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
