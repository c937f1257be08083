package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProposalState is the workflow stage of a proposal.
type ProposalState string

const (
	StatePending     ProposalState = "Pendiente"
	StateInReview    ProposalState = "En Revision"
	StateApproved    ProposalState = "Aprobada"
	StateRejected    ProposalState = "Rechazada"
	StateInExecution ProposalState = "En Ejecucion"
	StateCompleted   ProposalState = "Completada"
)

// ProposalStates lists every workflow state. Admin updates may set any of
// them from any current state; no transition table is enforced.
var ProposalStates = []ProposalState{
	StatePending,
	StateInReview,
	StateApproved,
	StateRejected,
	StateInExecution,
	StateCompleted,
}

// Valid reports whether s is a known workflow state.
func (s ProposalState) Valid() bool {
	for _, state := range ProposalStates {
		if s == state {
			return true
		}
	}
	return false
}

// Votable reports whether a proposal in state s is open to public voting.
// Votes are only meaningful while the proposal awaits an administrative
// decision; every later state closes the ballot.
func (s ProposalState) Votable() bool {
	return s == StatePending || s == StateInReview
}

// Neighborhoods valid for users and proposals.
var Neighborhoods = []string{"Centro", "Norte", "Sur", "Este", "Oeste", "Ninguno"}

// ValidNeighborhood reports whether barrio is a known neighborhood.
func ValidNeighborhood(barrio string) bool {
	for _, n := range Neighborhoods {
		if barrio == n {
			return true
		}
	}
	return false
}

// Categories valid for proposals.
var Categories = []string{
	"Infraestructura",
	"Seguridad",
	"Salud",
	"Educacion",
	"Medio Ambiente",
	"Transporte",
	"Cultura y Recreacion",
	"Servicios Publicos",
	"Desarrollo Social",
	"Tecnologia",
}

// ValidCategory reports whether categoria is a known category.
func ValidCategory(categoria string) bool {
	for _, c := range Categories {
		if categoria == c {
			return true
		}
	}
	return false
}

// Proposal represents a municipal proposal subject to voting and commenting.
// Proposals are system-owned; no author reference is kept.
type Proposal struct {
	ID           uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	Title        string        `json:"titulo" gorm:"size:255;not null"`
	Description  string        `json:"descripcion" gorm:"type:text;not null"`
	Neighborhood string        `json:"barrio" gorm:"size:50;not null"`
	Category     string        `json:"categoria" gorm:"size:50;not null"`
	State        ProposalState `json:"estado" gorm:"size:20;not null;default:'Pendiente';index"`
	CreatedAt    time.Time     `json:"fechaCreacion"`
	UpdatedAt    time.Time     `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
