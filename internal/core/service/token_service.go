package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/algo/shoe-inventory/internal/core/domain"
	"github.com/algo/shoe-inventory/internal/core/ports"
)

// TokenConfig holds the signing parameters of a TokenService. Now defaults to
// time.Now.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
}

type sessionClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens with one shared secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	// exp is encoded with second precision and has to land after iat.
	if cfg.TTL < time.Second {
		return nil, fmt.Errorf("token ttl must be at least 1s, got %s", cfg.TTL)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &TokenService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    now,
		parser: jwt.NewParser(opts...),
	}, nil
}

func (s *TokenService) Issue(subject string, roles []domain.Role) (*ports.IssuedToken, error) {
	if subject == "" {
		return nil, errors.New("token subject must not be empty")
	}

	// Both instants are encoded as whole seconds.
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl).Truncate(time.Second)
	id := uuid.NewString()

	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}

	claims := sessionClaims{
		Roles: names,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &ports.IssuedToken{
		Token:     signed,
		ID:        id,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate accepts a token only strictly before its expiry instant.
func (s *TokenService) Validate(token string) (*ports.TokenClaims, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims := &sessionClaims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	roles := make([]domain.Role, 0, len(claims.Roles))
	for _, name := range claims.Roles {
		if r, ok := domain.ParseRole(name); ok {
			roles = append(roles, r)
		}
	}

	out := &ports.TokenClaims{
		Subject:   claims.Subject,
		Roles:     roles,
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
