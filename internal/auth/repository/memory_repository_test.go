package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"clipstream-backend/internal/auth/domain"
)

func seedUser(t *testing.T, repo UserRepository) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: "bob",
		Email:    "bob@example.com",
		FullName: "Bob",
		Password: "hash",
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	return user
}

func TestCreate_DuplicateIsCaseInsensitive(t *testing.T) {
	repo := NewMemoryRepository()
	seedUser(t, repo)

	dup := &domain.User{Username: "BOB", Email: "other@example.com", Password: "hash"}
	if err := repo.Create(context.Background(), dup); !errors.Is(err, ErrDuplicateIdentifier) {
		t.Fatalf("expected ErrDuplicateIdentifier, got %v", err)
	}

	dup = &domain.User{Username: "other", Email: "Bob@Example.com", Password: "hash"}
	if err := repo.Create(context.Background(), dup); !errors.Is(err, ErrDuplicateIdentifier) {
		t.Fatalf("expected ErrDuplicateIdentifier, got %v", err)
	}
}

func TestFindByIdentifier(t *testing.T) {
	repo := NewMemoryRepository()
	seedUser(t, repo)

	for _, identifier := range []string{"bob", "bob@example.com", "BOB"} {
		u, err := repo.FindByIdentifier(context.Background(), identifier)
		if err != nil {
			t.Fatalf("FindByIdentifier(%q) error: %v", identifier, err)
		}
		if u == nil {
			t.Fatalf("FindByIdentifier(%q) = nil, want user", identifier)
		}
	}

	u, err := repo.FindByIdentifier(context.Background(), "nobody")
	if err != nil || u != nil {
		t.Fatalf("FindByIdentifier(nobody) = %v, %v; want nil, nil", u, err)
	}
}

func TestRotateRefreshToken_CAS(t *testing.T) {
	repo := NewMemoryRepository()
	user := seedUser(t, repo)

	if err := repo.SetRefreshToken(context.Background(), user.ID, "tok-1"); err != nil {
		t.Fatalf("SetRefreshToken error: %v", err)
	}

	if err := repo.RotateRefreshToken(context.Background(), user.ID, "tok-1", "tok-2"); err != nil {
		t.Fatalf("rotation with matching expected value failed: %v", err)
	}

	// The old expected value no longer matches.
	if err := repo.RotateRefreshToken(context.Background(), user.ID, "tok-1", "tok-3"); !errors.Is(err, ErrStaleRefreshToken) {
		t.Fatalf("expected ErrStaleRefreshToken, got %v", err)
	}

	stored, err := repo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if stored.RefreshToken != "tok-2" {
		t.Fatalf("stored token = %q, want tok-2", stored.RefreshToken)
	}
}

func TestRotateRefreshToken_ConcurrentOneWinner(t *testing.T) {
	repo := NewMemoryRepository()
	user := seedUser(t, repo)

	if err := repo.SetRefreshToken(context.Background(), user.ID, "stale"); err != nil {
		t.Fatalf("SetRefreshToken error: %v", err)
	}

	const racers = 8
	var wg sync.WaitGroup
	errs := make(chan error, racers)
	for i := 0; i < racers; i++ {
		next := string(rune('a' + i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.RotateRefreshToken(context.Background(), user.ID, "stale", next)
		}()
	}
	wg.Wait()
	close(errs)

	var winners int
	for err := range errs {
		if err == nil {
			winners++
		} else if !errors.Is(err, ErrStaleRefreshToken) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("winners = %d, want exactly 1", winners)
	}
}

func TestSetRefreshToken_ClearIsIdempotent(t *testing.T) {
	repo := NewMemoryRepository()
	user := seedUser(t, repo)

	for i := 0; i < 2; i++ {
		if err := repo.SetRefreshToken(context.Background(), user.ID, ""); err != nil {
			t.Fatalf("SetRefreshToken clear #%d error: %v", i+1, err)
		}
	}

	stored, err := repo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if stored.RefreshToken != "" {
		t.Fatalf("stored token = %q, want empty", stored.RefreshToken)
	}
}
