package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")

	signed, err := tokens.Generate("64f1c0ffee", RoleUser)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Subject != "64f1c0ffee" {
		t.Fatalf("subject = %q", claims.Subject)
	}
	if claims.Role != RoleUser {
		t.Fatalf("role = %q", claims.Role)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signed, err := NewTokens("secret-a").Generate("id", RoleDoctor)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := NewTokens("secret-b").Validate(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := NewTokens("secret").Validate("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGenerateRequiresSecret(t *testing.T) {
	if _, err := NewTokens("").Generate("id", RoleAdmin); err == nil {
		t.Fatal("expected error with empty secret")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("s3cretpass", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrongpass", hash) {
		t.Fatal("wrong password accepted")
	}
}
