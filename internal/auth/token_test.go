package auth

import (
	"errors"
	"testing"
	"time"

	"netkas/internal/core"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret-at-least-16", "netkas", time.Hour)
	want := core.Session{ID: "u1", Username: "amin", Role: core.RoleAdmin}

	token, err := tm.Generate(want)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != want {
		t.Fatalf("session %+v, want %+v", got, want)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one-16-chars", "netkas", time.Hour)
	verifier := NewTokenManager("secret-two-16-chars", "netkas", time.Hour)

	token, err := issuer.Generate(core.Session{ID: "u1", Username: "amin", Role: core.RoleAdmin})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenRejectsWrongIssuer(t *testing.T) {
	issuer := NewTokenManager("shared-secret-16-ch", "other-app", time.Hour)
	verifier := NewTokenManager("shared-secret-16-ch", "netkas", time.Hour)

	token, _ := issuer.Generate(core.Session{ID: "u1", Username: "amin", Role: core.RoleUser})
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	tm := NewTokenManager("test-secret-at-least-16", "netkas", -time.Minute)

	token, err := tm.Generate(core.Session{ID: "u1", Username: "amin", Role: core.RoleUser})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := tm.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret-at-least-16", "netkas", time.Hour)
	for _, in := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.Verify(in); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%q: expected ErrInvalidToken, got %v", in, err)
		}
	}
}
