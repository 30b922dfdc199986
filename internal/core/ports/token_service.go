package ports

import (
	"time"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

// IssuedToken is a freshly signed session token.
type IssuedToken struct {
	Token     string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenClaims are the verified contents of a session token.
type TokenClaims struct {
	Subject   string
	Roles     []domain.Role
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService signs and verifies session tokens. Validate collapses every
// failure (malformed, forged, expired) into domain.ErrTokenInvalid.
type TokenService interface {
	Issue(subject string, roles []domain.Role) (*IssuedToken, error)
	Validate(token string) (*TokenClaims, error)
}
