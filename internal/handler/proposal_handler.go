package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"participa/internal/model"
	"participa/internal/response"
	"participa/internal/service"
)

// ProposalHandler handles proposal endpoints.
type ProposalHandler struct {
	proposalService service.ProposalService
}

// NewProposalHandler creates a new proposal handler.
func NewProposalHandler(proposalService service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService}
}

// CreateProposalRequest represents an admin proposal creation request.
type CreateProposalRequest struct {
	Title        string `json:"titulo" validate:"required"`
	Description  string `json:"descripcion" validate:"required"`
	Neighborhood string `json:"barrio" validate:"required"`
	Category     string `json:"categoria" validate:"required"`
}

// UpdateProposalRequest represents an admin proposal update; omitted fields
// are left unchanged. The state field accepts any enum value regardless of
// the current state.
type UpdateProposalRequest struct {
	Title        *string `json:"titulo"`
	Description  *string `json:"descripcion"`
	Neighborhood *string `json:"barrio"`
	Category     *string `json:"categoria"`
	State        *string `json:"estado"`
}

// ProposalDetail augments a proposal with its current vote eligibility so
// clients can disable the vote action up front.
type ProposalDetail struct {
	*model.Proposal
	CanVote bool `json:"sePuedeVotar"`
}

// ListProposals godoc
// @Summary List all proposals
// @Tags proposals
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /propuestas [get]
func (h *ProposalHandler) ListProposals(c echo.Context) error {
	proposals, err := h.proposalService.ListProposals(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.List(c, http.StatusOK, len(proposals), proposals)
}

// FilterProposals godoc
// @Summary List proposals filtered by barrio, categoria or estado
// @Tags proposals
// @Produce json
// @Param barrio query string false "Neighborhood"
// @Param categoria query string false "Category"
// @Param estado query string false "Workflow state"
// @Success 200 {object} response.Envelope
// @Router /propuestas/filtrar [get]
func (h *ProposalHandler) FilterProposals(c echo.Context) error {
	proposals, err := h.proposalService.ListFiltered(
		c.Request().Context(),
		c.QueryParam("barrio"),
		c.QueryParam("categoria"),
		c.QueryParam("estado"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return response.List(c, http.StatusOK, len(proposals), proposals)
}

// GetProposal godoc
// @Summary Get a proposal by id
// @Tags proposals
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /propuestas/{id} [get]
func (h *ProposalHandler) GetProposal(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "ID de propuesta no valido")
	}

	proposal, err := h.proposalService.GetProposal(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, http.StatusOK, ProposalDetail{
		Proposal: proposal,
		CanVote:  proposal.State.Votable(),
	})
}

// CreateProposal godoc
// @Summary Create a proposal
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProposalRequest true "Proposal data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /propuestas [post]
func (h *ProposalHandler) CreateProposal(c echo.Context) error {
	var req CreateProposalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "cuerpo de la peticion invalido")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "todos los campos son requeridos: titulo, descripcion, barrio, categoria")
	}

	proposal, err := h.proposalService.CreateProposal(
		c.Request().Context(), req.Title, req.Description, req.Neighborhood, req.Category)
	if err != nil {
		return respondError(c, err)
	}
	return response.Message(c, http.StatusCreated, "propuesta creada exitosamente", proposal)
}

// UpdateProposal godoc
// @Summary Update a proposal, including free-form state assignment
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Param request body UpdateProposalRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /propuestas/{id} [put]
func (h *ProposalHandler) UpdateProposal(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "ID de propuesta no valido")
	}

	var req UpdateProposalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "cuerpo de la peticion invalido")
	}

	proposal, err := h.proposalService.UpdateProposal(c.Request().Context(), id, service.ProposalUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Neighborhood: req.Neighborhood,
		Category:     req.Category,
		State:        req.State,
	})
	if err != nil {
		return respondError(c, err)
	}
	return response.Message(c, http.StatusOK, "propuesta actualizada exitosamente", proposal)
}

// DeleteProposal godoc
// @Summary Delete a proposal
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /propuestas/{id} [delete]
func (h *ProposalHandler) DeleteProposal(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "ID de propuesta no valido")
	}

	proposal, err := h.proposalService.DeleteProposal(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Message(c, http.StatusOK, "propuesta eliminada exitosamente", proposal)
}
