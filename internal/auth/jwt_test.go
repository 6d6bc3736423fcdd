package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService("test-signing-secret-at-least-32-bytes")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	issued := Claims{
		Subject:   "user-1",
		Roles:     []string{RoleAdmin},
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
		IssuedAt:  time.Now().Unix(),
	}

	token, err := svc.Generate(issued)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(strings.Split(token, ".")) != 3 {
		t.Fatalf("token %q is not three dot-separated segments", token)
	}

	parsed, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if parsed.Subject != issued.Subject {
		t.Fatalf("subject = %s, want %s", parsed.Subject, issued.Subject)
	}
	if !parsed.HasAnyRole(RoleAdmin) {
		t.Fatal("parsed claims should carry ADMIN role")
	}
}

func TestTokenServiceRejectsTampering(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService("test-signing-secret-at-least-32-bytes")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	token, err := svc.Generate(Claims{Subject: "user-1", Roles: []string{RoleSupport}})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.Parse(tampered); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("Parse(tampered) error = %v, want ErrInvalidSignature", err)
	}

	other, err := NewTokenService("a-completely-different-signing-secret")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("Parse with wrong secret error = %v, want ErrInvalidSignature", err)
	}

	if _, err := svc.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse(malformed) error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService("test-signing-secret-at-least-32-bytes")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	token, err := svc.Generate(Claims{
		Subject:   "user-1",
		Roles:     []string{RoleAdmin},
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := svc.Parse(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("Parse(expired) error = %v, want ErrExpiredToken", err)
	}
}

func TestClaimsHasAnyRole(t *testing.T) {
	t.Parallel()

	claims := Claims{Roles: []string{"support"}}
	if !claims.HasAnyRole(RoleAdmin, RoleSupport) {
		t.Fatal("role match should be case-insensitive")
	}
	if claims.HasAnyRole(RoleSystem) {
		t.Fatal("SYSTEM should not match SUPPORT")
	}
	if (Claims{}).HasAnyRole(RoleAdmin) {
		t.Fatal("empty claims should match nothing")
	}
}
