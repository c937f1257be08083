package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"participa/internal/auth"
	"participa/internal/handler"
	appmw "participa/internal/middleware"
	"participa/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	proposalHandler *handler.ProposalHandler,
	voteHandler *handler.VoteHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	authenticated := appmw.Authenticate(jwtService, tokenStore, userRepo)

	// Abusable auth endpoints get per-IP rate limits.
	loginLimiter := rateLimit(5, 15*time.Minute)
	registerLimiter := rateLimit(3, time.Hour)
	resetLimiter := rateLimit(3, 15*time.Minute)
	changePasswordLimiter := rateLimit(10, 15*time.Minute)

	// Auth
	api.POST("/auth/register", authHandler.Register, registerLimiter)
	api.POST("/auth/login", authHandler.Login, loginLimiter)
	api.POST("/auth/logout", authHandler.Logout, authenticated)
	api.GET("/auth/profile", authHandler.Profile, authenticated)
	api.POST("/auth/verify", authHandler.Verify, authenticated)
	api.POST("/auth/change-password", authHandler.ChangePassword, authenticated, changePasswordLimiter)
	api.POST("/auth/request-password-reset", authHandler.RequestPasswordReset, resetLimiter)
	api.POST("/auth/reset-password", authHandler.ResetPassword, resetLimiter)

	// Proposals: reading is public, mutations are admin-only.
	api.GET("/propuestas", proposalHandler.ListProposals)
	api.GET("/propuestas/filtrar", proposalHandler.FilterProposals)
	api.GET("/propuestas/:id", proposalHandler.GetProposal)
	api.POST("/propuestas", proposalHandler.CreateProposal, authenticated, appmw.RequireAdmin)
	api.PUT("/propuestas/:id", proposalHandler.UpdateProposal, authenticated, appmw.RequireAdmin)
	api.DELETE("/propuestas/:id", proposalHandler.DeleteProposal, authenticated, appmw.RequireAdmin)

	// Votes
	api.POST("/votos", voteHandler.CastVote, authenticated)
	api.GET("/votos/mis-votos", voteHandler.GetMyVotes, authenticated)
	api.GET("/votos/propuesta/:propuestaId", voteHandler.GetProposalVotes)
	api.GET("/votos/propuesta/:propuestaId/stats", voteHandler.GetVoteStats)
	api.GET("/votos/propuesta/:propuestaId/mi-voto", voteHandler.GetMyVote, authenticated)

	// Comments
	api.POST("/comentarios", commentHandler.CreateComment, authenticated)
	api.GET("/comentarios/mis-comentarios", commentHandler.GetMyComments, authenticated)
	api.GET("/comentarios/propuesta/:propuestaId", commentHandler.GetProposalComments)
	api.GET("/comentarios/propuesta/:propuestaId/stats", commentHandler.GetCommentStats)
	api.DELETE("/comentarios/:comentarioId", commentHandler.DeleteComment, authenticated)

	// User directory (admin only)
	usuarios := api.Group("/usuarios", authenticated, appmw.RequireAdmin)
	usuarios.GET("", userHandler.ListUsers)
	usuarios.GET("/filtrar", userHandler.FilterUsers)
	usuarios.GET("/:id", userHandler.GetUser)
	usuarios.PUT("/:id", userHandler.UpdateUser)
	usuarios.DELETE("/:id", userHandler.DeactivateUser)
}

// rateLimit allows max requests per window per client IP.
func rateLimit(max int, window time.Duration) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(max) / window.Seconds()),
			Burst:     max,
			ExpiresIn: window,
		}),
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
