package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"participa/internal/auth"
	apperrors "participa/internal/errors"
	"participa/internal/model"
	"participa/internal/repository"
)

// Context keys set by Authenticate.
const (
	ClaimsContextKey = "claims"
	UserContextKey   = "currentUser"
)

// Authenticate validates the bearer token, rejects blacklisted tokens and
// resolves the caller to an existing active user. Each request re-checks the
// user, so deactivation takes effect immediately even for tokens issued
// before deactivation.
func Authenticate(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, userRepo repository.UserRepository) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ClaimsContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				return nil, err
			}

			blacklisted, err := tokenStore.IsTokenBlacklisted(c.Request().Context(), claims.ID)
			if err != nil {
				return nil, err
			}
			if blacklisted {
				return nil, errors.New("token invalidado, inicia sesion nuevamente")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return nil, errors.New("token invalido")
			}
			user, err := userRepo.FindActiveByID(c.Request().Context(), userID)
			if err != nil {
				return nil, errors.New("usuario no valido o inactivo")
			}
			c.Set(UserContextKey, user)

			return claims, nil
		},
	})
}

// RequireAdmin rejects requests whose resolved user lacks the admin role.
// It must run after Authenticate.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrAdminRequired)
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user set by Authenticate, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, ok := c.Get(UserContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentClaims returns the validated token claims set by Authenticate, or nil.
func CurrentClaims(c echo.Context) *auth.Claims {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// Unauthorized is a helper for handlers that need an explicit 401 envelope.
func Unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
		Success: false,
		Message: message,
		Code:    "UNAUTHORIZED",
	})
}
