package api

import (
	"net/http"

	"clipstream-backend/internal/auth/delivery"
	authUsecase "clipstream-backend/internal/auth/usecase"
	"clipstream-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, cfg *config.Config) {
	authHandler := delivery.NewAuthHandler(authUc, cfg)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", delivery.AuthMiddleware(authUc), authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
		}
	}

	// Locally stored uploads are served as static files.
	if cfg.StorageDriver == "local" {
		r.Static("/uploads", cfg.LocalStorageDir)
	}
}
