package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService("0123456789abcdef", time.Hour)

	raw, err := ts.Issue("alice", "Director")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := ts.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != "Director" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenExpired(t *testing.T) {
	ts := NewTokenService("0123456789abcdef", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	ts.now = func() time.Time { return issued }

	raw, err := ts.Issue("alice", "Director")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	ts.now = time.Now
	if _, err := ts.Parse(raw); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	raw, err := NewTokenService("0123456789abcdef", time.Hour).Issue("alice", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenService("fedcba9876543210", time.Hour).Parse(raw); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	ts := NewTokenService("0123456789abcdef", time.Hour)
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(ts.secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ts.Parse(raw); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for HS512 token, got %v", err)
	}
}

func TestTokenRequiresSubjectAndExpiry(t *testing.T) {
	ts := NewTokenService("0123456789abcdef", time.Hour)

	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}).SignedString(ts.secret)
	if _, err := ts.Parse(noSubject); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without subject, got %v", err)
	}

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject: "alice",
	}}).SignedString(ts.secret)
	if _, err := ts.Parse(noExpiry); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without expiry, got %v", err)
	}
}
