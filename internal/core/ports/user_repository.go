package ports

import (
	"context"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

// UserRepository persists accounts. Username uniqueness is enforced by the
// store itself; Create reports a violation as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateAccountState(ctx context.Context, username string, enabled, locked bool) (*domain.User, error)
}
