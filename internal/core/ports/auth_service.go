package ports

import (
	"context"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

// RegisterInput carries the fields of a self-service registration.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// LoginInput carries credentials plus the caller address used for throttling.
type LoginInput struct {
	Username string
	Password string
	ClientIP string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	User  *domain.User
	Token *IssuedToken
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

// LoginLimiter tracks failed logins. Check returns domain.ErrTooManyAttempts
// while a key is blocked.
type LoginLimiter interface {
	Check(ctx context.Context, username, clientIP string) error
	RecordFailure(ctx context.Context, username, clientIP string) error
	Reset(ctx context.Context, username, clientIP string) error
}
