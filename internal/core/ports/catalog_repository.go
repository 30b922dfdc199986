package ports

import (
	"context"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

type ShoeRepository interface {
	Create(ctx context.Context, shoe *domain.Shoe) (*domain.Shoe, error)
	List(ctx context.Context) ([]*domain.Shoe, error)
}

// OrderRepository loads orders joined with their shoe.
type OrderRepository interface {
	CreateBatch(ctx context.Context, orders []*domain.Order) error
	List(ctx context.Context) ([]*domain.Order, error)
}

type TransactionRepository interface {
	CreateBatch(ctx context.Context, txs []*domain.Transaction) error
	List(ctx context.Context) ([]*domain.Transaction, error)
}
