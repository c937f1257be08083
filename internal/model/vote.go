package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoteKindPositive is the only vote kind; the platform records endorsements
// only, no negative or abstain votes.
const VoteKindPositive = "positivo"

// Vote is an immutable endorsement of a proposal by a user. The composite
// unique index on (UserID, ProposalID) is the authoritative one-vote-per-user
// guarantee: concurrent duplicate casts are resolved by the database, not by
// application-level checks. Votes are never updated or deleted.
type Vote struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID `json:"usuarioId" gorm:"type:char(36);not null;uniqueIndex:idx_votes_user_proposal;index"`
	ProposalID uuid.UUID `json:"propuestaId" gorm:"type:char(36);not null;uniqueIndex:idx_votes_user_proposal;index"`
	Kind       string    `json:"tipoVoto" gorm:"size:20;not null;default:'positivo'"`
	CreatedAt  time.Time `json:"fechaVoto"`
}

// BeforeCreate sets UUID before creating the record.
func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
