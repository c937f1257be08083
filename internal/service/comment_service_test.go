package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "participa/internal/errors"
	"participa/internal/model"
)

func TestCommentService_CreateComment(t *testing.T) {
	userID := uuid.New()
	proposalID := uuid.New()

	tests := []struct {
		name            string
		content         string
		setupMock       func(*MockCommentRepository, *MockProposalRepository)
		expectedError   error
		expectValidErr  bool
		expectedContent string
	}{
		{
			name:    "successful comment",
			content: "Una propuesta muy necesaria para el barrio.",
			setupMock: func(mComment *MockCommentRepository, mProposal *MockProposalRepository) {
				mProposal.On("FindByID", mock.Anything, proposalID).Return(&model.Proposal{ID: proposalID}, nil)
				mComment.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			},
			expectedContent: "Una propuesta muy necesaria para el barrio.",
		},
		{
			name:    "content is trimmed before storing",
			content: "   bien pensado   ",
			setupMock: func(mComment *MockCommentRepository, mProposal *MockProposalRepository) {
				mProposal.On("FindByID", mock.Anything, proposalID).Return(&model.Proposal{ID: proposalID}, nil)
				mComment.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			},
			expectedContent: "bien pensado",
		},
		{
			name:           "empty content",
			content:        "   ",
			setupMock:      func(mComment *MockCommentRepository, mProposal *MockProposalRepository) {},
			expectValidErr: true,
		},
		{
			name:           "content over the length limit",
			content:        strings.Repeat("a", model.CommentMaxLength+1),
			setupMock:      func(mComment *MockCommentRepository, mProposal *MockProposalRepository) {},
			expectValidErr: true,
		},
		{
			name:    "content exactly at the length limit",
			content: strings.Repeat("ñ", model.CommentMaxLength),
			setupMock: func(mComment *MockCommentRepository, mProposal *MockProposalRepository) {
				mProposal.On("FindByID", mock.Anything, proposalID).Return(&model.Proposal{ID: proposalID}, nil)
				mComment.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			},
			expectedContent: strings.Repeat("ñ", model.CommentMaxLength),
		},
		{
			name:    "proposal not found",
			content: "hola",
			setupMock: func(mComment *MockCommentRepository, mProposal *MockProposalRepository) {
				mProposal.On("FindByID", mock.Anything, proposalID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrProposalNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCommentRepo := new(MockCommentRepository)
			mockProposalRepo := new(MockProposalRepository)
			tt.setupMock(mockCommentRepo, mockProposalRepo)

			service := NewCommentService(mockCommentRepo, mockProposalRepo)
			comment, err := service.CreateComment(context.Background(), userID, proposalID, tt.content)

			switch {
			case tt.expectValidErr:
				var validationErr *apperrors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Nil(t, comment)
			case tt.expectedError != nil:
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, comment)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedContent, comment.Content)
				assert.Equal(t, userID, comment.UserID)
				assert.Equal(t, proposalID, comment.ProposalID)
			}

			mockCommentRepo.AssertExpectations(t)
			mockProposalRepo.AssertExpectations(t)
		})
	}
}

func TestCommentService_DeleteComment(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()
	commentID := uuid.New()

	t.Run("owner can delete", func(t *testing.T) {
		mockCommentRepo := new(MockCommentRepository)
		mockCommentRepo.On("FindByID", mock.Anything, commentID).Return(&model.Comment{
			ID:     commentID,
			UserID: ownerID,
		}, nil)
		mockCommentRepo.On("Delete", mock.Anything, commentID).Return(nil)

		service := NewCommentService(mockCommentRepo, new(MockProposalRepository))
		err := service.DeleteComment(context.Background(), ownerID, commentID)

		assert.NoError(t, err)
		mockCommentRepo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		mockCommentRepo := new(MockCommentRepository)
		mockCommentRepo.On("FindByID", mock.Anything, commentID).Return(&model.Comment{
			ID:     commentID,
			UserID: ownerID,
		}, nil)

		service := NewCommentService(mockCommentRepo, new(MockProposalRepository))
		err := service.DeleteComment(context.Background(), otherID, commentID)

		assert.Equal(t, apperrors.ErrNotCommentOwner, err)
		mockCommentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("comment not found", func(t *testing.T) {
		mockCommentRepo := new(MockCommentRepository)
		mockCommentRepo.On("FindByID", mock.Anything, commentID).Return(nil, gorm.ErrRecordNotFound)

		service := NewCommentService(mockCommentRepo, new(MockProposalRepository))
		err := service.DeleteComment(context.Background(), ownerID, commentID)

		assert.Equal(t, apperrors.ErrCommentNotFound, err)
	})
}

func TestCommentService_GetStats(t *testing.T) {
	proposalID := uuid.New()

	mockCommentRepo := new(MockCommentRepository)
	mockCommentRepo.On("CountByProposal", mock.Anything, proposalID).Return(int64(3), nil)

	service := NewCommentService(mockCommentRepo, new(MockProposalRepository))
	stats, err := service.GetStats(context.Background(), proposalID)

	assert.NoError(t, err)
	assert.Equal(t, proposalID, stats.ProposalID)
	assert.Equal(t, int64(3), stats.TotalComments)
}
