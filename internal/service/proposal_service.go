package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "participa/internal/errors"
	"participa/internal/model"
	"participa/internal/repository"
)

// ProposalUpdate carries optional field updates; nil fields are left alone.
type ProposalUpdate struct {
	Title        *string
	Description  *string
	Neighborhood *string
	Category     *string
	State        *string
}

// ProposalService handles proposal lifecycle operations. Creation, update and
// deletion are admin-only; the access control layer enforces that before any
// of these run.
type ProposalService interface {
	CreateProposal(ctx context.Context, titulo, descripcion, barrio, categoria string) (*model.Proposal, error)
	UpdateProposal(ctx context.Context, id uuid.UUID, update ProposalUpdate) (*model.Proposal, error)
	DeleteProposal(ctx context.Context, id uuid.UUID) (*model.Proposal, error)
	GetProposal(ctx context.Context, id uuid.UUID) (*model.Proposal, error)
	ListProposals(ctx context.Context) ([]model.Proposal, error)
	ListFiltered(ctx context.Context, barrio, categoria, estado string) ([]model.Proposal, error)
}

type proposalService struct {
	proposalRepo repository.ProposalRepository
}

// NewProposalService creates a new proposal service.
func NewProposalService(proposalRepo repository.ProposalRepository) ProposalService {
	return &proposalService{proposalRepo: proposalRepo}
}

func (s *proposalService) CreateProposal(ctx context.Context, titulo, descripcion, barrio, categoria string) (*model.Proposal, error) {
	if titulo == "" || descripcion == "" || barrio == "" || categoria == "" {
		return nil, apperrors.NewValidationError("todos los campos son requeridos: titulo, descripcion, barrio, categoria")
	}
	if !model.ValidNeighborhood(barrio) {
		return nil, apperrors.NewValidationError("barrio %q no es valido", barrio)
	}
	if !model.ValidCategory(categoria) {
		return nil, apperrors.NewValidationError("categoria %q no es valida", categoria)
	}

	proposal := &model.Proposal{
		Title:        titulo,
		Description:  descripcion,
		Neighborhood: barrio,
		Category:     categoria,
		State:        model.StatePending,
	}
	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}
	return proposal, nil
}

// UpdateProposal applies the provided fields. State assignment is free-form
// across the enum: an admin may move a proposal from any state to any other,
// including backwards corrections such as Rechazada back to Pendiente.
func (s *proposalService) UpdateProposal(ctx context.Context, id uuid.UUID, update ProposalUpdate) (*model.Proposal, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProposalNotFound
		}
		return nil, fmt.Errorf("find proposal: %w", err)
	}

	if update.Title != nil {
		proposal.Title = *update.Title
	}
	if update.Description != nil {
		proposal.Description = *update.Description
	}
	if update.Neighborhood != nil {
		if !model.ValidNeighborhood(*update.Neighborhood) {
			return nil, apperrors.NewValidationError("barrio %q no es valido", *update.Neighborhood)
		}
		proposal.Neighborhood = *update.Neighborhood
	}
	if update.Category != nil {
		if !model.ValidCategory(*update.Category) {
			return nil, apperrors.NewValidationError("categoria %q no es valida", *update.Category)
		}
		proposal.Category = *update.Category
	}
	if update.State != nil {
		state := model.ProposalState(*update.State)
		if !state.Valid() {
			return nil, apperrors.NewValidationError("estado %q no es valido", *update.State)
		}
		proposal.State = state
	}

	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, fmt.Errorf("update proposal: %w", err)
	}
	return proposal, nil
}

func (s *proposalService) DeleteProposal(ctx context.Context, id uuid.UUID) (*model.Proposal, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProposalNotFound
		}
		return nil, fmt.Errorf("find proposal: %w", err)
	}
	if err := s.proposalRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete proposal: %w", err)
	}
	return proposal, nil
}

func (s *proposalService) GetProposal(ctx context.Context, id uuid.UUID) (*model.Proposal, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProposalNotFound
		}
		return nil, fmt.Errorf("find proposal: %w", err)
	}
	return proposal, nil
}

func (s *proposalService) ListProposals(ctx context.Context) ([]model.Proposal, error) {
	proposals, err := s.proposalRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return proposals, nil
}

func (s *proposalService) ListFiltered(ctx context.Context, barrio, categoria, estado string) ([]model.Proposal, error) {
	proposals, err := s.proposalRepo.ListFiltered(ctx, barrio, categoria, estado)
	if err != nil {
		return nil, fmt.Errorf("list filtered proposals: %w", err)
	}
	return proposals, nil
}
