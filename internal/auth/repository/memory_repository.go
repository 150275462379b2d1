package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"clipstream-backend/internal/auth/domain"

	"github.com/google/uuid"
)

// memoryRepository is an in-process UserRepository used by tests and local
// runs without Postgres. The single mutex gives the same read-then-write
// atomicity the SQL conditional update provides.
type memoryRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by id
}

func NewMemoryRepository() UserRepository {
	return &memoryRepository{
		users: make(map[string]*domain.User),
	}
}

func (r *memoryRepository) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier) {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) FindByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (r *memoryRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicateIdentifier
		}
	}
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryRepository) SetRefreshToken(_ context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.RefreshToken = token
		u.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memoryRepository) RotateRefreshToken(_ context.Context, id, expected, next string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.RefreshToken != expected {
		return ErrStaleRefreshToken
	}
	u.RefreshToken = next
	u.UpdatedAt = time.Now()
	return nil
}
