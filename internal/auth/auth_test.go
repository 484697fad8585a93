package auth

import (
	"testing"
	"time"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue("admin@luxelush.example")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	email, err := m.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if email != "admin@luxelush.example" {
		t.Fatalf("unexpected subject %q", email)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue("admin@x")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenManager("secret-b", time.Hour).Validate(token); err == nil {
		t.Fatalf("expected validation failure for wrong secret")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	token, err := NewTokenManager("secret", -time.Minute).Issue("admin@x")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenManager("secret", time.Hour).Validate(token); err == nil {
		t.Fatalf("expected validation failure for expired token")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := NewTokenManager("secret", time.Hour).Validate("not-a-token"); err == nil {
		t.Fatalf("expected validation failure")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(hash, "wrong horse") {
		t.Fatalf("expected mismatch to fail")
	}
}
