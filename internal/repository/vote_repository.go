package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"participa/internal/model"
)

// VoteRepository defines persistence operations for votes. The vote table is
// append-only: no Update or Delete exists on purpose.
type VoteRepository interface {
	// Create inserts a vote. A duplicate (user, proposal) pair surfaces as
	// gorm.ErrDuplicatedKey from the composite unique index; the service
	// layer maps that to the already-voted domain error.
	Create(ctx context.Context, vote *model.Vote) error
	FindByUserAndProposal(ctx context.Context, userID, proposalID uuid.UUID) (*model.Vote, error)
	ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]model.Vote, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Vote, error)
	CountByProposal(ctx context.Context, proposalID uuid.UUID) (int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Create(ctx context.Context, vote *model.Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

func (r *voteRepository) FindByUserAndProposal(ctx context.Context, userID, proposalID uuid.UUID) (*model.Vote, error) {
	var vote model.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND proposal_id = ?", userID, proposalID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]model.Vote, error) {
	var votes []model.Vote
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("created_at DESC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *voteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Vote, error) {
	var votes []model.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// CountByProposal counts committed votes. Totals are always derived by
// counting; nothing is denormalized onto the proposal row.
func (r *voteRepository) CountByProposal(ctx context.Context, proposalID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Vote{}).
		Where("proposal_id = ?", proposalID).
		Count(&count).Error
	return count, err
}
