package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestTokenService(t *testing.T, secret string, clock *fakeClock) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{Secret: secret, TTL: time.Hour, Issuer: "shoe-inventory", Now: clock.Now})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestNewTokenService_RejectsBadConfig(t *testing.T) {
	if _, err := NewTokenService(TokenConfig{Secret: "", TTL: time.Hour}); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewTokenService(TokenConfig{Secret: "s", TTL: 0}); err == nil {
		t.Fatal("expected error for zero ttl")
	}
	if _, err := NewTokenService(TokenConfig{Secret: "s", TTL: -time.Minute}); err == nil {
		t.Fatal("expected error for negative ttl")
	}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, "secret", clock)

	issued, err := svc.Issue("alice", []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.Token == "" || issued.ID == "" {
		t.Fatalf("expected token and id, got %+v", issued)
	}
	if !issued.ExpiresAt.After(issued.IssuedAt) {
		t.Fatalf("expiry %v not after issue %v", issued.ExpiresAt, issued.IssuedAt)
	}
	if got := issued.ExpiresAt.Sub(issued.IssuedAt); got != time.Hour {
		t.Fatalf("ttl = %v, want 1h", got)
	}

	claims, err := svc.Validate(issued.Token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleUser {
		t.Errorf("roles = %v", claims.Roles)
	}
	if claims.ID != issued.ID {
		t.Errorf("jti = %q, want %q", claims.ID, issued.ID)
	}
	if !claims.ExpiresAt.Equal(issued.ExpiresAt) {
		t.Errorf("exp = %v, want %v", claims.ExpiresAt, issued.ExpiresAt)
	}
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	svc := newTestTokenService(t, "secret", clock)

	issued, err := svc.Issue("alice", []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	clock.t = issued.ExpiresAt.Add(-time.Nanosecond)
	if _, err := svc.Validate(issued.Token); err != nil {
		t.Fatalf("expected token valid just before expiry, got %v", err)
	}

	clock.t = issued.ExpiresAt
	if _, err := svc.Validate(issued.Token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid at expiry, got %v", err)
	}

	clock.t = issued.ExpiresAt.Add(time.Minute)
	if _, err := svc.Validate(issued.Token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid after expiry, got %v", err)
	}
}

func TestTokenService_FractionalTTLReportsEncodedExpiry(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 300*int(time.Millisecond), time.UTC)
	clock := &fakeClock{t: start}
	svc, err := NewTokenService(TokenConfig{Secret: "secret", TTL: 1500 * time.Millisecond, Now: clock.Now})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	issued, err := svc.Issue("alice", []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	want := time.Date(2025, 3, 1, 12, 0, 1, 0, time.UTC)
	if !issued.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %s, got %s", want, issued.ExpiresAt)
	}

	clock.t = issued.ExpiresAt.Add(-time.Nanosecond)
	if _, err := svc.Validate(issued.Token); err != nil {
		t.Fatalf("expected token valid just before reported expiry, got %v", err)
	}
	clock.t = issued.ExpiresAt
	if _, err := svc.Validate(issued.Token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid at reported expiry, got %v", err)
	}
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := newTestTokenService(t, "secret-a", clock)
	verifier := newTestTokenService(t, "secret-b", clock)

	issued, err := issuer.Issue("alice", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Validate(issued.Token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_RejectsMalformedAndOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestTokenService(t, "secret", clock)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "mallory",
		"exp": clock.t.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "mallory",
		"exp": clock.t.Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign hs512 token: %v", err)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "mallory",
		"iss": "shoe-inventory",
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token without exp: %v", err)
	}

	for name, tok := range map[string]string{
		"empty":     "",
		"garbage":   "not-a-token",
		"alg none":  noneToken,
		"alg hs512": hs512,
		"no expiry": noExp,
		"truncated": strings.Join(strings.Split(noExp, ".")[:2], "."),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Validate(tok); !errors.Is(err, domain.ErrTokenInvalid) {
				t.Fatalf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestTokenService_DropsUnknownRoles(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestTokenService(t, "secret", clock)

	issued, err := svc.Issue("alice", []domain.Role{domain.RoleAdmin, "ROLE_ROOT"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := svc.Validate(issued.Token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleAdmin {
		t.Fatalf("roles = %v, want [ROLE_ADMIN]", claims.Roles)
	}
}
