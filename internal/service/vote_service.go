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

// VoteStats summarizes voting on a proposal. Totals come from counting the
// vote table at read time, never from a cached counter.
type VoteStats struct {
	ProposalID uuid.UUID `json:"propuestaId"`
	TotalVotes int64     `json:"totalVotos"`
	CanVote    bool      `json:"puedeVotar"`
}

// VoteCheck reports whether a user has already voted on a proposal.
type VoteCheck struct {
	HasVoted bool        `json:"yaVoto"`
	Vote     *model.Vote `json:"voto"`
}

// VoteService handles vote casting and vote statistics.
type VoteService interface {
	CastVote(ctx context.Context, userID, proposalID uuid.UUID) (*model.Vote, error)
	CheckUserVote(ctx context.Context, userID, proposalID uuid.UUID) (*VoteCheck, error)
	GetStats(ctx context.Context, proposalID uuid.UUID) (*VoteStats, error)
	ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]model.Vote, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Vote, error)
}

type voteService struct {
	voteRepo     repository.VoteRepository
	proposalRepo repository.ProposalRepository
}

// NewVoteService creates a new vote service.
func NewVoteService(voteRepo repository.VoteRepository, proposalRepo repository.ProposalRepository) VoteService {
	return &voteService{
		voteRepo:     voteRepo,
		proposalRepo: proposalRepo,
	}
}

// CastVote records a positive vote by userID on proposalID. The proposal must
// exist and be in a votable state. Duplicate casts, including concurrent ones,
// are rejected by the storage-level unique index; there is deliberately no
// read-then-write existence check here, since that would race.
func (s *voteService) CastVote(ctx context.Context, userID, proposalID uuid.UUID) (*model.Vote, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProposalNotFound
		}
		return nil, fmt.Errorf("find proposal: %w", err)
	}

	if !proposal.State.Votable() {
		return nil, &apperrors.VotingClosedError{State: proposal.State}
	}

	vote := &model.Vote{
		UserID:     userID,
		ProposalID: proposalID,
		Kind:       model.VoteKindPositive,
	}

	if err := s.voteRepo.Create(ctx, vote); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyVoted
		}
		return nil, fmt.Errorf("create vote: %w", err)
	}

	return vote, nil
}

// CheckUserVote is a read-side convenience for clients rendering vote-button
// state. The unique index remains the real duplicate guard.
func (s *voteService) CheckUserVote(ctx context.Context, userID, proposalID uuid.UUID) (*VoteCheck, error) {
	vote, err := s.voteRepo.FindByUserAndProposal(ctx, userID, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &VoteCheck{HasVoted: false}, nil
		}
		return nil, fmt.Errorf("find vote: %w", err)
	}
	return &VoteCheck{HasVoted: true, Vote: vote}, nil
}

func (s *voteService) GetStats(ctx context.Context, proposalID uuid.UUID) (*VoteStats, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProposalNotFound
		}
		return nil, fmt.Errorf("find proposal: %w", err)
	}

	count, err := s.voteRepo.CountByProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}

	return &VoteStats{
		ProposalID: proposalID,
		TotalVotes: count,
		CanVote:    proposal.State.Votable(),
	}, nil
}

func (s *voteService) ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]model.Vote, error) {
	votes, err := s.voteRepo.ListByProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	return votes, nil
}

func (s *voteService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Vote, error) {
	votes, err := s.voteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user votes: %w", err)
	}
	return votes, nil
}
