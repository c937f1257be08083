package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"participa/internal/middleware"
	"participa/internal/response"
	"participa/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a citizen registration request.
type RegisterRequest struct {
	FullName        string `json:"nombreCompleto" validate:"required,min=2,max=100"`
	DNI             string `json:"dni" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Neighborhood    string `json:"barrio" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents a password change for a logged-in user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// PasswordResetRequest asks for a reset link by email.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest consumes an emailed reset token.
type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// AuthResponse carries a signed token and the account it belongs to.
type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Register godoc
// @Summary Register a new citizen account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "cuerpo de la peticion invalido")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.ConfirmPassword != "" && req.Password != req.ConfirmPassword {
		return badRequest(c, "las contrasenas no coinciden")
	}

	user, token, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		FullName:     req.FullName,
		DNI:          req.DNI,
		Email:        req.Email,
		Neighborhood: req.Neighborhood,
		Password:     req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Message(c, http.StatusCreated, "usuario registrado exitosamente", AuthResponse{
		Token: token,
		User:  user,
	})
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "cuerpo de la peticion invalido")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return response.Message(c, http.StatusOK, "login exitoso", AuthResponse{
		Token: token,
		User:  user,
	})
}

// Logout godoc
// @Summary Invalidate the current token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return middleware.Unauthorized(c, "token de acceso requerido")
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return respondError(c, err)
	}
	return response.Message(c, http.StatusOK, "logout exitoso", nil)
}

// Profile godoc
// @Summary Get the logged-in user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.Unauthorized(c, "token de acceso requerido")
	}
	profile, err := h.authService.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, http.StatusOK, profile)
}

// Verify godoc
// @Summary Verify the current token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(c echo.Context) error {
	// Reaching this handler means the token passed the auth middleware.
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.Unauthorized(c, "token de acceso requerido")
	}
	return response.Message(c, http.StatusOK, "token valido", user)
}

// ChangePassword godoc
// @Summary Change the logged-in user's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Password change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.Unauthorized(c, "token de acceso requerido")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "cuerpo de la peticion invalido")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.NewPassword != req.ConfirmPassword {
		return badRequest(c, "las contrasenas nuevas no coinciden")
	}

	if err := h.authService.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return response.Message(c, http.StatusOK, "contrasena cambiada exitosamente", nil)
}

// RequestPasswordReset godoc
// @Summary Request a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Account email"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/request-password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req PasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "cuerpo de la peticion invalido")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	// Same response whether or not the account exists.
	return response.Message(c, http.StatusOK, "si el email existe, se ha enviado un enlace de recuperacion", nil)
}

// ResetPassword godoc
// @Summary Reset password with an emailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "cuerpo de la peticion invalido")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.NewPassword != req.ConfirmPassword {
		return badRequest(c, "las contrasenas no coinciden")
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return response.Message(c, http.StatusOK, "contrasena restablecida exitosamente", nil)
}
