package services

import (
	"context"
	"errors"
	"testing"

	"kitarchive/internal/models"
)

func TestLoginUpsert(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, nil)
	ctx := context.Background()

	first, err := svc.Login(ctx, &LoginRequest{Email: "Collector@Example.com", Name: "Ana"})
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if first.Email != "collector@example.com" {
		t.Errorf("email must be stored lowercased, got %q", first.Email)
	}
	if first.Role != models.RoleUser {
		t.Errorf("expected default role user, got %q", first.Role)
	}

	second, err := svc.Login(ctx, &LoginRequest{Email: "collector@example.com", Name: "Ana Maria"})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if second.UserID != first.UserID {
		t.Errorf("login must upsert, got a second account %q", second.UserID)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("expected one user row, got %d", count)
	}
}

func TestLoginModeratorAllowlist(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, []string{"Mod@Example.com"})
	ctx := context.Background()

	user, err := svc.Login(ctx, &LoginRequest{Email: "mod@example.com"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != models.RoleModerator {
		t.Errorf("allowlisted email must become moderator, got %q", user.Role)
	}
}

func TestLoginNeverDemotesAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, models.RoleAdmin, false)

	user, err := svc.Login(ctx, &LoginRequest{Email: admin.Email})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("admin role must survive login, got %q", user.Role)
	}
}

func TestUpdateProfileUsernameUnique(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, nil)
	ctx := context.Background()

	alice := createTestUser(t, db, models.RoleUser, false)
	bob := createTestUser(t, db, models.RoleUser, false)

	name := "shirtsleuth"
	if _, err := svc.UpdateProfile(ctx, alice.UserID, &models.ProfileUpdateRequest{Username: &name}); err != nil {
		t.Fatalf("first username claim failed: %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, bob.UserID, &models.ProfileUpdateRequest{Username: &name}); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// Re-claiming your own username is fine
	if _, err := svc.UpdateProfile(ctx, alice.UserID, &models.ProfileUpdateRequest{Username: &name}); err != nil {
		t.Errorf("re-claiming own username failed: %v", err)
	}
}

func TestUpdateProfileEmptyRequest(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, nil)

	user := createTestUser(t, db, models.RoleUser, false)
	if _, err := svc.UpdateProfile(context.Background(), user.UserID, &models.ProfileUpdateRequest{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
