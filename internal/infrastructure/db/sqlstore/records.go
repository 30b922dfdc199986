package sqlstore

import (
	"time"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

type userRecord struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:50;not null"`
	Email        string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	Role         string `gorm:"size:20;not null"`
	Enabled      bool
	Locked       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		Enabled:      r.Enabled,
		Locked:       r.Locked,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

type shoeRecord struct {
	ID              int64  `gorm:"primaryKey"`
	ShoeType        string `gorm:"column:shoe_type"`
	Size            int
	Price           int64
	ProductionPrice int64
}

func (shoeRecord) TableName() string { return "shoes" }

func (r *shoeRecord) toDomain() *domain.Shoe {
	return &domain.Shoe{
		ID:              r.ID,
		Type:            domain.ShoeType(r.ShoeType),
		Size:            r.Size,
		Price:           r.Price,
		ProductionPrice: r.ProductionPrice,
	}
}

type orderRecord struct {
	ID          int64 `gorm:"primaryKey"`
	ShoeID      int64
	Shoe        *shoeRecord `gorm:"foreignKey:ShoeID"`
	Status      string
	Description string
	OrderDate   time.Time `gorm:"column:order_date"`
	Quantity    int
}

func (orderRecord) TableName() string { return "orders" }

func (r *orderRecord) toDomain() *domain.Order {
	o := &domain.Order{
		ID:          r.ID,
		ShoeID:      r.ShoeID,
		Status:      domain.OrderStatus(r.Status),
		Description: r.Description,
		Date:        r.OrderDate.UTC(),
		Quantity:    r.Quantity,
	}
	if r.Shoe != nil {
		o.Shoe = r.Shoe.toDomain()
	}
	return o
}

type transactionRecord struct {
	ID              int64 `gorm:"primaryKey"`
	OrderID         int64
	Order           *orderRecord `gorm:"foreignKey:OrderID"`
	AmountCents     int64
	TransactionDate time.Time
	PaymentMethod   string
	Status          string
}

func (transactionRecord) TableName() string { return "transactions" }

func (r *transactionRecord) toDomain() *domain.Transaction {
	t := &domain.Transaction{
		ID:              r.ID,
		OrderID:         r.OrderID,
		Amount:          domain.Money(r.AmountCents),
		TransactionDate: r.TransactionDate.UTC(),
		PaymentMethod:   domain.PaymentMethod(r.PaymentMethod),
		Status:          domain.TransactionStatus(r.Status),
	}
	if r.Order != nil {
		t.Order = r.Order.toDomain()
	}
	return t
}
