package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"participa/internal/model"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"proposal not found", ErrProposalNotFound, http.StatusNotFound, "PROPOSAL_NOT_FOUND"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"comment not found", ErrCommentNotFound, http.StatusNotFound, "COMMENT_NOT_FOUND"},
		{"already voted", ErrAlreadyVoted, http.StatusBadRequest, "ALREADY_VOTED"},
		{"not comment owner", ErrNotCommentOwner, http.StatusForbidden, "FORBIDDEN"},
		{"admin required", ErrAdminRequired, http.StatusForbidden, "FORBIDDEN"},
		{"voting closed", &VotingClosedError{State: model.StateApproved}, http.StatusBadRequest, "INVALID_STATE"},
		{"validation", NewValidationError("campo requerido"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrapped sentinel", fmt.Errorf("cast vote: %w", ErrAlreadyVoted), http.StatusBadRequest, "ALREADY_VOTED"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp 10.0.0.5:3306: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.NotContains(t, httpErr.Message, "10.0.0.5")
}

func TestVotingClosedError_NamesState(t *testing.T) {
	err := &VotingClosedError{State: model.StateCompleted}
	assert.Contains(t, err.Error(), "Completada")
}

func TestHTTPError_ToErrorResponse(t *testing.T) {
	resp := NewHTTPError(http.StatusNotFound, "propuesta no encontrada", "PROPOSAL_NOT_FOUND").ToErrorResponse()
	assert.False(t, resp.Success)
	assert.Equal(t, "propuesta no encontrada", resp.Message)
	assert.Equal(t, "PROPOSAL_NOT_FOUND", resp.Code)
}
