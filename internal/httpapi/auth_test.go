package httpapi

import (
	"testing"
	"time"

	"bodega/backend/internal/domain"
)

func TestSignAndParseRoundTrip(t *testing.T) {
	auth := NewAuthManager("test-secret-key", time.Hour)
	account := &domain.Account{AccountID: 7, Username: "maria"}

	token, expiresAt, err := auth.Sign(account)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}

	actor, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if actor.AccountID != 7 || actor.Username != "maria" {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer := NewAuthManager("secret-one", time.Hour)
	verifier := NewAuthManager("secret-two", time.Hour)

	token, _, err := signer.Sign(&domain.Account{AccountID: 7, Username: "maria"})
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatalf("expected rejection for token signed with a different secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	auth := &AuthManager{secret: []byte("test-secret-key"), tokenTTL: -time.Minute}

	token, _, err := auth.Sign(&domain.Account{AccountID: 7, Username: "maria"})
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := auth.ParseToken(token); err == nil {
		t.Fatalf("expected rejection for expired token")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	auth := NewAuthManager("test-secret-key", time.Hour)
	if _, err := auth.ParseToken("not-a-token"); err == nil {
		t.Fatalf("expected rejection for malformed token")
	}
}
