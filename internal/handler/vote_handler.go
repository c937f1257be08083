package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"participa/internal/middleware"
	"participa/internal/response"
	"participa/internal/service"
)

// VoteHandler handles vote endpoints.
type VoteHandler struct {
	voteService service.VoteService
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(voteService service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// CastVoteRequest represents a vote cast request. The voter identity always
// comes from the authenticated token, never from the body.
type CastVoteRequest struct {
	ProposalID string `json:"propuestaId" validate:"required,uuid"`
}

// CastVote godoc
// @Summary Vote on a proposal
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CastVoteRequest true "Proposal to vote on"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /votos [post]
func (h *VoteHandler) CastVote(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.Unauthorized(c, "token de acceso requerido")
	}

	var req CastVoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "cuerpo de la peticion invalido")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "ID de propuesta es requerido")
	}
	proposalID, err := uuid.Parse(req.ProposalID)
	if err != nil {
		return badRequest(c, "ID de propuesta invalido")
	}

	vote, err := h.voteService.CastVote(c.Request().Context(), user.ID, proposalID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Message(c, http.StatusCreated, "voto registrado exitosamente", vote)
}

// GetProposalVotes godoc
// @Summary List votes on a proposal
// @Tags votes
// @Produce json
// @Param propuestaId path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Router /votos/propuesta/{propuestaId} [get]
func (h *VoteHandler) GetProposalVotes(c echo.Context) error {
	proposalID, err := uuid.Parse(c.Param("propuestaId"))
	if err != nil {
		return badRequest(c, "ID de propuesta invalido")
	}

	votes, err := h.voteService.ListByProposal(c.Request().Context(), proposalID)
	if err != nil {
		return respondError(c, err)
	}
	return response.List(c, http.StatusOK, len(votes), votes)
}

// GetVoteStats godoc
// @Summary Vote statistics for a proposal
// @Tags votes
// @Produce json
// @Param propuestaId path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /votos/propuesta/{propuestaId}/stats [get]
func (h *VoteHandler) GetVoteStats(c echo.Context) error {
	proposalID, err := uuid.Parse(c.Param("propuestaId"))
	if err != nil {
		return badRequest(c, "ID de propuesta invalido")
	}

	stats, err := h.voteService.GetStats(c.Request().Context(), proposalID)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, http.StatusOK, stats)
}

// GetMyVote godoc
// @Summary Check whether the logged-in user voted on a proposal
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Param propuestaId path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /votos/propuesta/{propuestaId}/mi-voto [get]
func (h *VoteHandler) GetMyVote(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.Unauthorized(c, "token de acceso requerido")
	}
	proposalID, err := uuid.Parse(c.Param("propuestaId"))
	if err != nil {
		return badRequest(c, "ID de propuesta invalido")
	}

	check, err := h.voteService.CheckUserVote(c.Request().Context(), user.ID, proposalID)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, http.StatusOK, check)
}

// GetMyVotes godoc
// @Summary Vote history of the logged-in user
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /votos/mis-votos [get]
func (h *VoteHandler) GetMyVotes(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.Unauthorized(c, "token de acceso requerido")
	}

	votes, err := h.voteService.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return response.List(c, http.StatusOK, len(votes), votes)
}
