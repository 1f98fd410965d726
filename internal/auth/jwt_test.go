package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate("u1", "alice@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	userID, email, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if userID != "u1" {
		t.Errorf("userID = %s, want u1", userID)
	}
	if email != "alice@example.com" {
		t.Errorf("email = %s, want alice@example.com", email)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).Generate("u1", "a@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, _, err := NewJWTManager("secret-b", time.Hour).ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.Generate("u1", "a@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	if _, _, err := m.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct-horse" {
		t.Error("hash equals the plain password")
	}
	if !CheckPassword(hash, "correct-horse") {
		t.Error("CheckPassword() rejected the right password")
	}
	if CheckPassword(hash, "wrong-horse") {
		t.Error("CheckPassword() accepted the wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("12345678"); err != nil {
		t.Errorf("ValidatePassword(8 chars) error = %v", err)
	}
	if err := ValidatePassword("1234567"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("ValidatePassword(7 chars) error = %v, want %v", err, ErrWeakPassword)
	}
}
