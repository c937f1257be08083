package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "participa/internal/errors"
	"participa/internal/model"
	"participa/internal/repository"
)

// CommentStats summarizes commenting on a proposal.
type CommentStats struct {
	ProposalID    uuid.UUID `json:"propuestaId"`
	TotalComments int64     `json:"totalComentarios"`
}

// CommentService handles comment creation, listing and owner-only deletion.
type CommentService interface {
	CreateComment(ctx context.Context, userID, proposalID uuid.UUID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
	GetStats(ctx context.Context, proposalID uuid.UUID) (*CommentStats, error)
	ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]model.Comment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Comment, error)
}

type commentService struct {
	commentRepo  repository.CommentRepository
	proposalRepo repository.ProposalRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, proposalRepo repository.ProposalRepository) CommentService {
	return &commentService{
		commentRepo:  commentRepo,
		proposalRepo: proposalRepo,
	}
}

// CreateComment stores a trimmed comment on an existing proposal. Commenting
// is not gated by workflow state; any authenticated user may comment on any
// proposal at any stage.
func (s *commentService) CreateComment(ctx context.Context, userID, proposalID uuid.UUID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("el contenido del comentario es requerido")
	}
	if utf8.RuneCountInString(content) > model.CommentMaxLength {
		return nil, apperrors.NewValidationError("el comentario no puede superar los %d caracteres", model.CommentMaxLength)
	}

	if _, err := s.proposalRepo.FindByID(ctx, proposalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProposalNotFound
		}
		return nil, fmt.Errorf("find proposal: %w", err)
	}

	comment := &model.Comment{
		UserID:     userID,
		ProposalID: proposalID,
		Content:    content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment if and only if userID authored it. Admins
// get no override here; moderation is a product decision this platform has
// not taken.
func (s *commentService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("find comment: %w", err)
	}

	if comment.UserID != userID {
		return apperrors.ErrNotCommentOwner
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *commentService) GetStats(ctx context.Context, proposalID uuid.UUID) (*CommentStats, error) {
	count, err := s.commentRepo.CountByProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return &CommentStats{ProposalID: proposalID, TotalComments: count}, nil
}

func (s *commentService) ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]model.Comment, error) {
	comments, err := s.commentRepo.ListByProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Comment, error) {
	comments, err := s.commentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user comments: %w", err)
	}
	return comments, nil
}
