package usecase

import (
	"context"
	"testing"
	"time"

	"main/utils"
)

func TestCreateUserAndAuthenticate(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	store := newFakeUserStore()
	svc := NewUserService(store, utils.FixedClock{Instant: now})

	user, err := svc.CreateUser(context.Background(), "alice", "alice@example.com", "secret1!")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.UserID == "" {
		t.Error("user ID not assigned")
	}
	if user.Password == "secret1!" {
		t.Error("password stored in plaintext")
	}

	authed, err := svc.Authenticate(context.Background(), "alice", "secret1!")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if authed == nil || authed.UserID != user.UserID {
		t.Errorf("authenticated user = %+v", authed)
	}

	wrong, err := svc.Authenticate(context.Background(), "alice", "wrong2@")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if wrong != nil {
		t.Error("wrong password authenticated")
	}

	missing, err := svc.Authenticate(context.Background(), "nobody", "secret1!")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if missing != nil {
		t.Error("unknown username authenticated")
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	store := newFakeUserStore()
	svc := NewUserService(store, utils.FixedClock{Instant: now})

	if _, err := svc.CreateUser(context.Background(), "alice", "alice@example.com", "secret1!"); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}
	if _, err := svc.CreateUser(context.Background(), "alice", "other@example.com", "secret1!"); err == nil {
		t.Error("duplicate username accepted")
	}
}
