package services

import (
	"context"
	"errors"
	"testing"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.accounts.Register(ctx, models.CreateLocalUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Password == "correct-horse" {
		t.Fatal("expected password to be hashed")
	}

	for _, login := range []string{"alice", "alice@example.com"} {
		got, err := f.accounts.Authenticate(ctx, login, "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate(%s): %v", login, err)
		}
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	}

	if _, err := f.accounts.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("expected unauthorized for bad password, got %v", err)
	}
	if _, err := f.accounts.Authenticate(ctx, "nobody", "whatever"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("expected unauthorized for unknown login, got %v", err)
	}

	if err := f.accounts.SetBanned(ctx, user.ID, true); err != nil {
		t.Fatalf("SetBanned: %v", err)
	}
	if _, err := f.accounts.Authenticate(ctx, "alice", "correct-horse"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("expected banned user to be rejected, got %v", err)
	}
}

func TestRegisterConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "taken")

	tests := []struct {
		name string
		req  models.CreateLocalUserRequest
		kind error
	}{
		{"duplicate username", models.CreateLocalUserRequest{Username: "taken", Email: "new@example.com", Password: "password1"}, apperr.ErrConflict},
		{"duplicate email", models.CreateLocalUserRequest{Username: "fresh", Email: "taken@example.com", Password: "password1"}, apperr.ErrConflict},
		{"invalid email", models.CreateLocalUserRequest{Username: "fresh", Email: "nope", Password: "password1"}, apperr.ErrValidation},
		{"short password", models.CreateLocalUserRequest{Username: "fresh", Email: "fresh@example.com", Password: "short"}, apperr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.accounts.Register(ctx, tt.req); !errors.Is(err, tt.kind) {
				t.Errorf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestUniqueIndexSurfacesAsConflict(t *testing.T) {
	f := newFixture(t)
	f.user(t, "dup")

	err := f.store.Users.Create(context.Background(), &models.User{Username: "dup", Email: "other@example.com"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict from the unique index, got %v", err)
	}
}

func TestChangeUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	f.user(t, "bob")

	if _, err := f.accounts.ChangeUsername(ctx, alice.ID, "bob"); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected conflict for a taken name, got %v", err)
	}

	// keeping your own name is not a conflict
	if _, err := f.accounts.ChangeUsername(ctx, alice.ID, "alice"); err != nil {
		t.Errorf("expected renaming to the same name to succeed, got %v", err)
	}

	got, err := f.accounts.ChangeUsername(ctx, alice.ID, "alicia")
	if err != nil {
		t.Fatalf("ChangeUsername: %v", err)
	}
	if got.Username != "alicia" {
		t.Errorf("expected alicia, got %s", got.Username)
	}
	if _, err := f.accounts.ChangeUsername(ctx, 999, "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestLinkFirebaseUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	existing := f.user(t, "existing")

	linked, err := f.accounts.LinkFirebaseUser(ctx, "uid-1", existing.Email, "ignored")
	if err != nil {
		t.Fatalf("LinkFirebaseUser (existing email): %v", err)
	}
	if linked.ID != existing.ID || linked.FirebaseUID == nil || *linked.FirebaseUID != "uid-1" {
		t.Errorf("expected existing account to be linked, got %+v", linked)
	}

	again, err := f.accounts.LinkFirebaseUser(ctx, "uid-1", "changed@example.com", "ignored")
	if err != nil {
		t.Fatalf("LinkFirebaseUser (known uid): %v", err)
	}
	if again.ID != existing.ID {
		t.Errorf("expected uid lookup to return %d, got %d", existing.ID, again.ID)
	}

	created, err := f.accounts.LinkFirebaseUser(ctx, "uid-2", "new@example.com", "newcomer")
	if err != nil {
		t.Fatalf("LinkFirebaseUser (new): %v", err)
	}
	if created.Username != "newcomer" || created.Password != "" {
		t.Errorf("expected a new passwordless account, got %+v", created)
	}
	if _, err := f.accounts.Authenticate(ctx, "newcomer", ""); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("expected firebase-only account to reject password login, got %v", err)
	}

	if _, err := f.accounts.LinkFirebaseUser(ctx, "uid-3", "third@example.com", "newcomer"); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected conflict on taken username, got %v", err)
	}
}
