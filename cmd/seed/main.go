package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"participa/internal/config"
	"participa/internal/db"
	"participa/internal/model"
	"participa/internal/repository"
)

// Bootstraps an administrator account and, when the proposal table is empty,
// a handful of sample proposals.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Proposal{}, &model.Vote{}, &model.Comment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	proposalRepo := repository.NewProposalRepository(gormDB)

	adminEmail := getEnv("ADMIN_EMAIL", "admin@participa.local")
	adminPassword := getEnv("ADMIN_PASSWORD", "Administrador1!")
	adminDNI := getEnv("ADMIN_DNI", "10000000")

	if _, err := userRepo.FindByEmailOrDNI(ctx, adminEmail, adminDNI); err == nil {
		log.Printf("Admin account %s already exists, skipping", adminEmail)
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 10)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		admin := &model.User{
			FullName:     "Administrador Municipal",
			DNI:          adminDNI,
			Email:        adminEmail,
			Neighborhood: "Centro",
			PasswordHash: string(hashed),
			Role:         model.RoleAdmin,
			Active:       true,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to create admin account: %v", err)
		}
		log.Printf("Created admin account %s", adminEmail)
	} else {
		log.Fatalf("Failed to check admin account: %v", err)
	}

	existing, err := proposalRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list proposals: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Found %d proposals, skipping sample data", len(existing))
		return
	}

	samples := []model.Proposal{
		{
			Title:        "Renovacion de luminarias en la plaza central",
			Description:  "Reemplazo del alumbrado de la plaza por luminarias LED de bajo consumo.",
			Neighborhood: "Centro",
			Category:     "Infraestructura",
			State:        model.StatePending,
		},
		{
			Title:        "Ciclovia en la avenida norte",
			Description:  "Construccion de una ciclovia segregada que conecte los barrios Norte y Centro.",
			Neighborhood: "Norte",
			Category:     "Transporte",
			State:        model.StateInReview,
		},
		{
			Title:        "Huerta comunitaria del barrio Sur",
			Description:  "Creacion de una huerta comunitaria con talleres abiertos de compostaje.",
			Neighborhood: "Sur",
			Category:     "Medio Ambiente",
			State:        model.StatePending,
		},
	}
	for i := range samples {
		if err := proposalRepo.Create(ctx, &samples[i]); err != nil {
			log.Fatalf("Failed to create sample proposal %q: %v", samples[i].Title, err)
		}
	}
	log.Printf("Created %d sample proposals", len(samples))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
