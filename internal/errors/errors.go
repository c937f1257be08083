package errors

import (
	"errors"
	"fmt"
	"net/http"

	"participa/internal/model"
)

var (
	// ErrProposalNotFound is returned when a proposal is not found.
	ErrProposalNotFound = errors.New("propuesta no encontrada")
	// ErrUserNotFound is returned when a user is not found or inactive.
	ErrUserNotFound = errors.New("usuario no encontrado")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comentario no encontrado")
	// ErrVoteNotFound is returned when a vote is not found.
	ErrVoteNotFound = errors.New("voto no encontrado")
	// ErrAlreadyVoted is returned when the composite unique index rejects a
	// duplicate vote. This is an expected outcome of the write path, never an
	// internal error.
	ErrAlreadyVoted = errors.New("ya has votado en esta propuesta")
	// ErrNotCommentOwner is returned when a non-owner attempts to delete a comment.
	ErrNotCommentOwner = errors.New("no tienes permisos para eliminar este comentario")
	// ErrAdminRequired is returned when an operation needs the admin role.
	ErrAdminRequired = errors.New("acceso denegado, se requiere rol de administrador")
)

// VotingClosedError reports a vote attempt on a proposal whose workflow
// state is outside the votable window. It names the blocking state.
type VotingClosedError struct {
	State model.ProposalState
}

func (e *VotingClosedError) Error() string {
	return fmt.Sprintf("no se puede votar en propuestas con estado %q, solo se permite votar en propuestas Pendientes o En Revision", string(e.State))
}

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var votingClosed *VotingClosedError
	if errors.As(err, &votingClosed) {
		return NewHTTPError(http.StatusBadRequest, votingClosed.Error(), "INVALID_STATE")
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return NewHTTPError(http.StatusBadRequest, validation.Error(), "VALIDATION_ERROR")
	}

	switch {
	case errors.Is(err, ErrProposalNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROPOSAL_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrVoteNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "VOTE_NOT_FOUND")
	case errors.Is(err, ErrAlreadyVoted):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_VOTED")
	case errors.Is(err, ErrNotCommentOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrAdminRequired):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "error interno del servidor", "INTERNAL_ERROR")
	}
}
