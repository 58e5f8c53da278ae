package security

import (
	"testing"
	"time"
)

func TestTokenProvider_IssueAndValidateSession(t *testing.T) {
	p, err := NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}

	token, exp, err := p.IssueSession("a1", "admin@acme.test", "acme inc")
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if token == "" {
		t.Fatal("IssueSession returned empty token")
	}
	if exp.Before(time.Now()) {
		t.Fatal("expires at in the past")
	}

	claims, err := p.ValidateSession(token)
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if claims.Subject != "a1" {
		t.Errorf("Subject = %q, want a1", claims.Subject)
	}
	if claims.Email != "admin@acme.test" {
		t.Errorf("Email = %q, want admin@acme.test", claims.Email)
	}
	if claims.Organization != "acme inc" {
		t.Errorf("Organization = %q, want acme inc", claims.Organization)
	}
	if claims.ID == "" {
		t.Error("jti should be set")
	}
}

func TestTokenProvider_SessionWithoutOrganization(t *testing.T) {
	p, err := NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	token, _, err := p.IssueSession("a1", "admin@acme.test", "")
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	claims, err := p.ValidateSession(token)
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if claims.Organization != "" {
		t.Errorf("Organization = %q, want empty", claims.Organization)
	}
}

func TestTokenProvider_ValidateSessionInvalid(t *testing.T) {
	p, err := NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	if _, err := p.ValidateSession("invalid-token"); err != ErrInvalidToken {
		t.Errorf("ValidateSession invalid token: want ErrInvalidToken, got %v", err)
	}
	if _, err := p.ValidateSession(""); err != ErrInvalidToken {
		t.Errorf("ValidateSession empty token: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider_ValidateSessionExpired(t *testing.T) {
	signer, err := ParsePrivateKey(testPrivateKeyPEM)
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	pub, err := ParsePublicKey(testPublicKeyPEM)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	p := NewTokenProvider(signer, pub, "test-issuer", "test-audience", -1*time.Minute)

	token, _, err := p.IssueSession("a1", "admin@acme.test", "acme inc")
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if _, err := p.ValidateSession(token); err != ErrInvalidToken {
		t.Errorf("ValidateSession expired: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider_ValidateSessionWrongIssuerOrAudience(t *testing.T) {
	signer, err := ParsePrivateKey(testPrivateKeyPEM)
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	pub, err := ParsePublicKey(testPublicKeyPEM)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}

	issuerA := NewTokenProvider(signer, pub, "issuer-a", "aud", 15*time.Minute)
	issuerB := NewTokenProvider(signer, pub, "issuer-b", "aud", 15*time.Minute)
	token, _, err := issuerA.IssueSession("a1", "admin@acme.test", "")
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if _, err := issuerB.ValidateSession(token); err != ErrInvalidToken {
		t.Errorf("ValidateSession wrong issuer: want ErrInvalidToken, got %v", err)
	}

	audA := NewTokenProvider(signer, pub, "iss", "aud-a", 15*time.Minute)
	audB := NewTokenProvider(signer, pub, "iss", "aud-b", 15*time.Minute)
	token, _, err = audA.IssueSession("a1", "admin@acme.test", "")
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if _, err := audB.ValidateSession(token); err != ErrInvalidToken {
		t.Errorf("ValidateSession wrong audience: want ErrInvalidToken, got %v", err)
	}
}
