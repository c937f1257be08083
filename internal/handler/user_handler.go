package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"participa/internal/response"
	"participa/internal/service"
)

// UserHandler handles the admin-only user directory endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateUserRequest represents an admin user update; omitted fields are left
// unchanged.
type UpdateUserRequest struct {
	FullName     *string `json:"nombreCompleto"`
	Email        *string `json:"email"`
	Neighborhood *string `json:"barrio"`
	Password     *string `json:"password"`
	Active       *bool   `json:"activo"`
	Role         *string `json:"rol"`
}

// ListUsers godoc
// @Summary List active users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /usuarios [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.List(c, http.StatusOK, len(users), users)
}

// FilterUsers godoc
// @Summary List active users filtered by barrio or rol
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param barrio query string false "Neighborhood"
// @Param rol query string false "Role"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /usuarios/filtrar [get]
func (h *UserHandler) FilterUsers(c echo.Context) error {
	users, err := h.userService.ListFiltered(c.Request().Context(), c.QueryParam("barrio"), c.QueryParam("rol"))
	if err != nil {
		return respondError(c, err)
	}
	return response.List(c, http.StatusOK, len(users), users)
}

// GetUser godoc
// @Summary Get an active user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /usuarios/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "ID de usuario no valido")
	}

	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /usuarios/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "ID de usuario no valido")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "cuerpo de la peticion invalido")
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), id, service.UserUpdate{
		FullName:     req.FullName,
		Email:        req.Email,
		Neighborhood: req.Neighborhood,
		Password:     req.Password,
		Active:       req.Active,
		Role:         req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}
	return response.Message(c, http.StatusOK, "usuario actualizado exitosamente", user)
}

// DeactivateUser godoc
// @Summary Deactivate a user (soft delete)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /usuarios/{id} [delete]
func (h *UserHandler) DeactivateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "ID de usuario no valido")
	}

	user, err := h.userService.DeactivateUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Message(c, http.StatusOK, "usuario desactivado exitosamente", user)
}
