package services

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	password := "secret1!"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !strings.Contains(hashed, "$") {
		t.Fatalf("hash %q missing salt separator", hashed)
	}

	ok, err := VerifyPassword(hashed, password)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !ok {
		t.Error("correct password did not verify")
	}

	ok, err = VerifyPassword(hashed, "wrong2@")
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if ok {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordRejectsWeakPasswords(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"too short", "a1!"},
		{"no number", "secret!!"},
		{"no special character", "secret11"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := HashPassword(tc.password); err == nil {
				t.Errorf("HashPassword(%q) succeeded, want error", tc.password)
			}
		})
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("secret1!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("secret1!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password share a salt")
	}
}

func TestVerifyPasswordBadFormat(t *testing.T) {
	if _, err := VerifyPassword("not-a-valid-hash", "secret1!"); err == nil {
		t.Error("expected an error for a malformed stored hash")
	}
}
