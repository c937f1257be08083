package main

import (
	"log"
	"net/http"
	"os"

	"participa/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"participa/internal/auth"
	"participa/internal/cache"
	"participa/internal/config"
	"participa/internal/db"
	"participa/internal/handler"
	"participa/internal/mail"
	"participa/internal/model"
	"participa/internal/repository"
	"participa/internal/router"
	"participa/internal/service"
)

// @title Participa API
// @version 1.0
// @description Municipal citizen participation API: proposals, one-vote-per-citizen voting and comments, with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Vote{},
			&model.Comment{},
			&model.Proposal{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Proposal{},
		&model.Vote{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	proposalRepo := repository.NewProposalRepository(gormDB)
	voteRepo := repository.NewVoteRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, mailer, cfg.FrontendBaseURL)
	userService := service.NewUserService(userRepo)
	proposalService := service.NewProposalService(proposalRepo)
	voteService := service.NewVoteService(voteRepo, proposalRepo)
	commentService := service.NewCommentService(commentRepo, proposalRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	proposalHandler := handler.NewProposalHandler(proposalService)
	voteHandler := handler.NewVoteHandler(voteService)
	commentHandler := handler.NewCommentHandler(commentService)

	// Register routes
	router.Register(
		e,
		jwtService,
		tokenStore,
		userRepo,
		authHandler,
		userHandler,
		proposalHandler,
		voteHandler,
		commentHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
