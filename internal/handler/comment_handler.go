package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"participa/internal/middleware"
	"participa/internal/response"
	"participa/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	ProposalID string `json:"propuestaId" validate:"required,uuid"`
	Content    string `json:"contenido" validate:"required"`
}

// CreateComment godoc
// @Summary Comment on a proposal
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comentarios [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.Unauthorized(c, "token de acceso requerido")
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "cuerpo de la peticion invalido")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "ID de propuesta y contenido son requeridos")
	}
	proposalID, err := uuid.Parse(req.ProposalID)
	if err != nil {
		return badRequest(c, "ID de propuesta invalido")
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), user.ID, proposalID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return response.Message(c, http.StatusCreated, "comentario creado exitosamente", comment)
}

// GetProposalComments godoc
// @Summary List comments on a proposal, newest first
// @Tags comments
// @Produce json
// @Param propuestaId path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Router /comentarios/propuesta/{propuestaId} [get]
func (h *CommentHandler) GetProposalComments(c echo.Context) error {
	proposalID, err := uuid.Parse(c.Param("propuestaId"))
	if err != nil {
		return badRequest(c, "ID de propuesta invalido")
	}

	comments, err := h.commentService.ListByProposal(c.Request().Context(), proposalID)
	if err != nil {
		return respondError(c, err)
	}
	return response.List(c, http.StatusOK, len(comments), comments)
}

// GetCommentStats godoc
// @Summary Comment statistics for a proposal
// @Tags comments
// @Produce json
// @Param propuestaId path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Router /comentarios/propuesta/{propuestaId}/stats [get]
func (h *CommentHandler) GetCommentStats(c echo.Context) error {
	proposalID, err := uuid.Parse(c.Param("propuestaId"))
	if err != nil {
		return badRequest(c, "ID de propuesta invalido")
	}

	stats, err := h.commentService.GetStats(c.Request().Context(), proposalID)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, http.StatusOK, stats)
}

// DeleteComment godoc
// @Summary Delete an own comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param comentarioId path string true "Comment ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comentarios/{comentarioId} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.Unauthorized(c, "token de acceso requerido")
	}
	commentID, err := uuid.Parse(c.Param("comentarioId"))
	if err != nil {
		return badRequest(c, "ID de comentario invalido")
	}

	if err := h.commentService.DeleteComment(c.Request().Context(), user.ID, commentID); err != nil {
		return respondError(c, err)
	}
	return response.Message(c, http.StatusOK, "comentario eliminado exitosamente", nil)
}

// GetMyComments godoc
// @Summary Comment history of the logged-in user
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /comentarios/mis-comentarios [get]
func (h *CommentHandler) GetMyComments(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.Unauthorized(c, "token de acceso requerido")
	}

	comments, err := h.commentService.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return response.List(c, http.StatusOK, len(comments), comments)
}
