package ports

import (
	"context"
	"time"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

// ShoeView is the API projection of a shoe.
type ShoeView struct {
	ID              int64  `json:"id"`
	Type            string `json:"type"`
	Size            int    `json:"size"`
	Price           int64  `json:"price"`
	ProductionPrice int64  `json:"production_price"`
}

// OrderView is an order flattened with its shoe.
type OrderView struct {
	ID                  int64  `json:"id"`
	ShoeID              int64  `json:"shoe_id"`
	ShoeType            string `json:"shoe_type"`
	ShoeSize            int    `json:"shoe_size"`
	ShoePrice           int64  `json:"shoe_price"`
	ShoeProductionPrice int64  `json:"shoe_production_price"`
	Status              string `json:"status"`
	Description         string `json:"description,omitempty"`
	Date                string `json:"date"`
	Quantity            int    `json:"quantity"`
}

// TransactionView renders Amount as a decimal string.
type TransactionView struct {
	ID              int64     `json:"id"`
	OrderID         int64     `json:"order_id"`
	ShoeID          int64     `json:"shoe_id,omitempty"`
	Amount          string    `json:"amount"`
	TransactionDate time.Time `json:"transaction_date"`
	PaymentMethod   string    `json:"payment_method"`
	Status          string    `json:"status"`
}

// UserView never exposes the password hash.
type UserView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Enabled  bool   `json:"enabled"`
	Locked   bool   `json:"locked"`
}

// AccountStateInput changes login eligibility. Nil fields are left as they are.
type AccountStateInput struct {
	Username string
	Enabled  *bool
	Locked   *bool
}

type ShoeService interface {
	ListShoes(ctx context.Context) ([]ShoeView, error)
}

type OrderService interface {
	ListOrders(ctx context.Context) ([]OrderView, error)
}

type TransactionService interface {
	ListTransactions(ctx context.Context) ([]TransactionView, error)
}

type UserService interface {
	CurrentUser(ctx context.Context, id domain.Identity) (*UserView, error)
	ListUsers(ctx context.Context) ([]UserView, error)
	SetAccountState(ctx context.Context, in AccountStateInput) (*UserView, error)
}
