package main

import (
	"context"
	"log"

	api "clipstream-backend/cmd/api"
	authdomain "clipstream-backend/internal/auth/domain"
	authRepo "clipstream-backend/internal/auth/repository"
	authUsecase "clipstream-backend/internal/auth/usecase"
	"clipstream-backend/pkg/config"
	"clipstream-backend/pkg/database"
	"clipstream-backend/pkg/hash"
	"clipstream-backend/pkg/storage"
	"clipstream-backend/pkg/token"
)

const maxImageEdge = 1280

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize media storage
	var uploader storage.Uploader
	switch cfg.StorageDriver {
	case "s3":
		s3Uploader, err := storage.NewS3Uploader(context.Background(), storage.S3Options{
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			log.Fatal("Failed to initialize S3 storage:", err)
		}
		uploader = s3Uploader
	default:
		if cfg.StorageDriver != "local" {
			log.Printf("[WARN] Unknown storage driver %q, falling back to local", cfg.StorageDriver)
		}
		uploader = storage.NewLocalUploader(cfg.LocalStorageDir, cfg.PublicBaseURL)
	}
	uploader = storage.NewImageNormalizer(uploader, maxImageEdge)

	// Initialize repositories and collaborators (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	hasher := hash.NewHasher(cfg.BcryptCost)
	issuer := token.NewIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, hasher, issuer, uploader)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
