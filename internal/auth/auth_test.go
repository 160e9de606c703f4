package auth

import (
	"testing"
	"time"
)

func TestPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash must not equal the password")
	}
	if !CheckPassword(hash, "hunter2") {
		t.Fatal("correct password must verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password must not verify")
	}
}

func TestTokenMintAndParse(t *testing.T) {
	t.Parallel()

	m, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager error: %v", err)
	}

	token, err := m.Mint("analyst@example.com")
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}

	email, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if email != "analyst@example.com" {
		t.Fatalf("unexpected subject: %s", email)
	}
}

func TestTokenRejectsForeignSecret(t *testing.T) {
	t.Parallel()

	a, _ := NewTokenManager("secret-a", time.Hour)
	b, _ := NewTokenManager("secret-b", time.Hour)

	token, err := a.Mint("analyst@example.com")
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}
	if _, err := b.Parse(token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestTokenManagerRequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Fatal("empty secret must fail at startup")
	}
}
