package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/repository/sqlite"
)

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Email:        "test@example.com",
		DisplayName:  "Test User",
		PasswordHash: "hashedpw",
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected user ID to be set after create")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestUserRepository_Create_FirstUserIsAdmin(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	first := &domain.User{Email: "first@example.com", DisplayName: "First", PasswordHash: "h"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second := &domain.User{Email: "second@example.com", DisplayName: "Second", PasswordHash: "h"}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	if !first.IsAdmin {
		t.Fatal("expected first account to be admin")
	}
	if second.IsAdmin {
		t.Fatal("expected second account not to be admin")
	}

	stored, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.IsAdmin {
		t.Fatal("expected stored first account to be admin")
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Email: "dup@example.com", DisplayName: "User 1", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create user1: %v", err)
	}

	// Email comparison ignores case.
	err := repo.Create(ctx, &domain.User{Email: "DUP@example.com", DisplayName: "User 2", PasswordHash: "h"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}

func TestUserRepository_Create_DuplicateDisplayName(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Email: "a@example.com", DisplayName: "Same", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, &domain.User{Email: "b@example.com", DisplayName: "Same", PasswordHash: "h"})
	if !errors.Is(err, domain.ErrDuplicateDisplayName) {
		t.Fatalf("expected ErrDuplicateDisplayName, got %v", err)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "byemail@example.com", "By Email")

	found, err := repo.GetByEmail(ctx, "byemail@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, found.ID)
	}
	if found.DisplayName != "By Email" {
		t.Fatalf("expected display name %q, got %q", "By Email", found.DisplayName)
	}

	_, err = repo.GetByEmail(ctx, "nonexistent@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_SetAdmin(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	createUser(t, db, "owner@example.com", "Owner")
	reader := createUser(t, db, "reader@example.com", "Reader")

	if err := repo.SetAdmin(ctx, reader.ID, true); err != nil {
		t.Fatalf("SetAdmin: %v", err)
	}
	found, err := repo.GetByID(ctx, reader.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !found.IsAdmin {
		t.Fatal("expected reader to be admin after SetAdmin")
	}

	if err := repo.SetAdmin(ctx, 99999, true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}
