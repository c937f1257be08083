package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"participa/internal/model"
)

// ProposalRepository defines persistence operations for proposals.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *model.Proposal) error
	Update(ctx context.Context, proposal *model.Proposal) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proposal, error)
	List(ctx context.Context) ([]model.Proposal, error)
	ListFiltered(ctx context.Context, barrio, categoria, estado string) ([]model.Proposal, error)
}

type proposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository creates a new proposal repository.
func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *model.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *proposalRepository) Update(ctx context.Context, proposal *model.Proposal) error {
	return r.db.WithContext(ctx).Save(proposal).Error
}

func (r *proposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Proposal{}).Error
}

func (r *proposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Proposal, error) {
	var proposal model.Proposal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&proposal).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *proposalRepository) List(ctx context.Context) ([]model.Proposal, error) {
	var proposals []model.Proposal
	if err := r.db.WithContext(ctx).Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}

func (r *proposalRepository) ListFiltered(ctx context.Context, barrio, categoria, estado string) ([]model.Proposal, error) {
	q := r.db.WithContext(ctx)
	if barrio != "" {
		q = q.Where("neighborhood = ?", barrio)
	}
	if categoria != "" {
		q = q.Where("category = ?", categoria)
	}
	if estado != "" {
		q = q.Where("state = ?", estado)
	}
	var proposals []model.Proposal
	if err := q.Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}
