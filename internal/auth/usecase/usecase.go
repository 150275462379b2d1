package usecase

import (
	"context"

	"clipstream-backend/internal/auth/domain"
	"clipstream-backend/internal/auth/dto"
	"clipstream-backend/pkg/storage"
)

// AuthUsecase is the session protocol: register, login, refresh-with-rotation
// and logout, plus access-token validation for the middleware.
type AuthUsecase interface {
	// Register creates a user. The avatar is required, the cover image is
	// optional; both are uploaded before any record is written, so a failed
	// upload never leaves a partial user behind.
	Register(ctx context.Context, req *dto.RegisterRequest, avatar, coverImage *storage.File) (*domain.User, error)

	// Login verifies credentials and issues a fresh access/refresh pair,
	// persisting the refresh token as the user's single active session.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)

	// Refresh rotates the presented refresh token into a new pair. The old
	// token is invalid the moment this succeeds; a concurrent refresh racing
	// on the same token loses and fails as unauthenticated.
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)

	// Logout clears the stored refresh token. Idempotent.
	Logout(ctx context.Context, userID string) error

	// ValidateAccess resolves an access token to its user.
	ValidateAccess(ctx context.Context, tokenString string) (*domain.User, error)
}
