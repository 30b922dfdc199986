package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/secure/precis"

	"github.com/algo/shoe-inventory/internal/core/domain"
	"github.com/algo/shoe-inventory/internal/core/ports"
)

const (
	minUsernameLen   = 3
	maxUsernameLen   = 50
	maxPasswordBytes = 72
)

var fieldValidator = validator.New()

// AuthService implements registration, credential checks and login.
type AuthService struct {
	repo      ports.UserRepository
	tokens    ports.TokenService
	limiter   ports.LoginLimiter
	cost      int
	dummyHash []byte
	now       func() time.Time
	logger    zerolog.Logger
}

// NewAuthService builds an AuthService. A zero bcryptCost selects
// bcrypt.DefaultCost; a nil limiter disables login throttling.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, limiter ports.LoginLimiter, bcryptCost int, logger zerolog.Logger) (*AuthService, error) {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if limiter == nil {
		limiter = noopLimiter{}
	}

	// Compared against for unknown users so both paths cost one bcrypt run.
	dummy, err := bcrypt.GenerateFromPassword([]byte("unknown-user-placeholder"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &AuthService{
		repo:      repo,
		tokens:    tokens,
		limiter:   limiter,
		cost:      bcryptCost,
		dummyHash: dummy,
		now:       time.Now,
		logger:    logger,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username, err := NormalizeUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}
	if err := fieldValidator.Var(in.Email, "required,email"); err != nil {
		return nil, domain.NewValidationError("email", "must be a valid email address")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Authenticate checks the password before account state, so a disabled or
// locked account is only revealed to someone who knows the password.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	name, err := NormalizeUsername(username)
	if err != nil || password == "" {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, name)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, domain.ErrAccountDisabled
	}
	if user.Locked {
		return nil, domain.ErrAccountLocked
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if err := s.limiter.Check(ctx, in.Username, in.ClientIP); err != nil {
		if errors.Is(err, domain.ErrTooManyAttempts) {
			return nil, err
		}
		s.logger.Warn().Err(err).Str("username", in.Username).Msg("login throttle check failed, continuing")
	}

	user, err := s.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			if ferr := s.limiter.RecordFailure(ctx, in.Username, in.ClientIP); ferr != nil {
				s.logger.Warn().Err(ferr).Str("username", in.Username).Msg("failed to record login failure")
			}
		}
		return nil, err
	}

	if rerr := s.limiter.Reset(ctx, in.Username, in.ClientIP); rerr != nil {
		s.logger.Warn().Err(rerr).Str("username", user.Username).Msg("failed to reset login throttle")
	}

	issued, err := s.tokens.Issue(user.Username, user.Roles())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Str("jti", issued.ID).Msg("login succeeded")
	return &ports.LoginResult{User: user, Token: issued}, nil
}

// NormalizeUsername applies the PRECIS UsernameCasePreserved profile and
// enforces the length limits.
func NormalizeUsername(raw string) (string, error) {
	name, err := precis.UsernameCasePreserved.String(raw)
	if err != nil {
		return "", domain.NewValidationError("username", "contains characters that are not allowed")
	}
	if n := utf8.RuneCountInString(name); n < minUsernameLen || n > maxUsernameLen {
		return "", domain.NewValidationError("username", fmt.Sprintf("must be between %d and %d characters", minUsernameLen, maxUsernameLen))
	}
	return name, nil
}

func checkPassword(password string) error {
	if password == "" {
		return domain.NewValidationError("password", "is required")
	}
	if len(password) > maxPasswordBytes {
		return domain.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}

type noopLimiter struct{}

func (noopLimiter) Check(context.Context, string, string) error         { return nil }
func (noopLimiter) RecordFailure(context.Context, string, string) error { return nil }
func (noopLimiter) Reset(context.Context, string, string) error         { return nil }
