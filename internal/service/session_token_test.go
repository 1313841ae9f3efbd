package service

import (
	"errors"
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewSessionTokenService("test-secret", time.Hour)

	token, err := svc.Issue("session-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.SessionID != "session-123" {
		t.Fatalf("session id = %q, want session-123", claims.SessionID)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	issuer := NewSessionTokenService("secret-a", time.Hour)
	verifier := NewSessionTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("session-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestSessionTokenExpired(t *testing.T) {
	svc := NewSessionTokenService("test-secret", time.Nanosecond)

	token, err := svc.Issue("session-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := svc.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestSessionTokenGarbageInput(t *testing.T) {
	svc := NewSessionTokenService("test-secret", time.Hour)

	for _, token := range []string{"", "   ", "not.a.token"} {
		if _, err := svc.Parse(token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("Parse(%q) err = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestSessionTokenNoSecret(t *testing.T) {
	svc := NewSessionTokenService("", time.Hour)
	if _, err := svc.Issue("session-123"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}
