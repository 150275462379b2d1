package repository

import (
	"context"
	"errors"

	"clipstream-backend/internal/auth/domain"
)

var (
	// ErrDuplicateIdentifier reports a username or email already in use.
	ErrDuplicateIdentifier = errors.New("username or email already in use")

	// ErrStaleRefreshToken reports that a conditional rotation matched no row:
	// the expected token is no longer the one stored for that user.
	ErrStaleRefreshToken = errors.New("stored refresh token does not match expected value")
)

// UserRepository is the persistence boundary for user identity records.
// Lookups return (nil, nil) when no record matches; a non-nil error means the
// store itself failed and the operation is safe to retry.
type UserRepository interface {
	// FindByIdentifier matches a single username-or-email value.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// FindByUsernameOrEmail matches a record holding either value.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)

	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Create persists a new user, enforcing username/email uniqueness.
	// A duplicate surfaces as ErrDuplicateIdentifier.
	Create(ctx context.Context, user *domain.User) error

	// SetRefreshToken unconditionally replaces the stored refresh token.
	// An empty token clears the session.
	SetRefreshToken(ctx context.Context, id, token string) error

	// RotateRefreshToken replaces the stored refresh token only if it still
	// equals expected; otherwise it fails with ErrStaleRefreshToken. This is
	// the per-user compare-and-swap that serializes concurrent refreshes.
	RotateRefreshToken(ctx context.Context, id, expected, next string) error
}
