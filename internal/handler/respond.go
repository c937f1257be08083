package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "participa/internal/errors"
	"participa/internal/service"
)

// respondError converts any service or domain error into the standard error
// envelope. Service-level auth errors pick their status here; everything else
// goes through the shared domain mapping.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
			Success: false,
			Message: err.Error(),
			Code:    "INVALID_CREDENTIALS",
		})
	case errors.Is(err, service.ErrUserAlreadyExists):
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Success: false,
			Message: err.Error(),
			Code:    "USER_ALREADY_EXISTS",
		})
	case errors.Is(err, service.ErrInvalidResetToken):
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Success: false,
			Message: err.Error(),
			Code:    "INVALID_RESET_TOKEN",
		})
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
		Success: false,
		Message: message,
		Code:    "VALIDATION_ERROR",
	})
}
