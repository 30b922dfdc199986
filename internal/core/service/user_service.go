package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/algo/shoe-inventory/internal/core/domain"
	"github.com/algo/shoe-inventory/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// CurrentUser loads the stored account behind an authenticated identity.
func (s *UserService) CurrentUser(ctx context.Context, id domain.Identity) (*ports.UserView, error) {
	if !id.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.repo.FindByUsername(ctx, id.Subject)
	if err != nil {
		return nil, err
	}
	v := toUserView(user)
	return &v, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]ports.UserView, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]ports.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, toUserView(u))
	}
	return out, nil
}

func (s *UserService) SetAccountState(ctx context.Context, in ports.AccountStateInput) (*ports.UserView, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if in.Enabled == nil && in.Locked == nil {
		return nil, domain.NewValidationError("body", "enabled or locked must be set")
	}

	current, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	enabled, locked := current.Enabled, current.Locked
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	if in.Locked != nil {
		locked = *in.Locked
	}

	updated, err := s.repo.UpdateAccountState(ctx, username, enabled, locked)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", updated.Username).
		Bool("enabled", updated.Enabled).
		Bool("locked", updated.Locked).
		Msg("account state changed")

	v := toUserView(updated)
	return &v, nil
}
