package service

import (
	"testing"
	"time"

	"github.com/artoasis/artoasis-backend/internal/config"
)

func testAuthConfig(secret string, expiry time.Duration) *config.Config {
	return &config.Config{
		JWTSecret: secret,
		JWTExpiry: expiry,
	}
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := NewAuthService(testAuthConfig("test-secret", time.Hour))

	token, err := svc.IssueToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", claims.Email, "alice@example.com")
	}
	if claims.Subject != "alice@example.com" {
		t.Errorf("subject = %q, want %q", claims.Subject, "alice@example.com")
	}
	if claims.ID == "" {
		t.Error("expected a token ID")
	}

	wantExpiry := time.Now().Add(time.Hour)
	if diff := claims.ExpiresAt.Time.Sub(wantExpiry); diff > time.Minute || diff < -time.Minute {
		t.Errorf("expiry %v too far from expected %v", claims.ExpiresAt.Time, wantExpiry)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewAuthService(testAuthConfig("test-secret", -time.Minute))

	token, err := svc.IssueToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewAuthService(testAuthConfig("secret-a", time.Hour))
	verifier := NewAuthService(testAuthConfig("secret-b", time.Hour))

	token, err := issuer.IssueToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	svc := NewAuthService(testAuthConfig("test-secret", time.Hour))

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.ValidateToken(tok); err == nil {
			t.Errorf("expected error for token %q", tok)
		}
	}
}
