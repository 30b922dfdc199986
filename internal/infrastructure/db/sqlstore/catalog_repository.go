package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

const batchSize = 500

type ShoeRepository struct {
	db *gorm.DB
}

func NewShoeRepository(db *gorm.DB) *ShoeRepository {
	return &ShoeRepository{db: db}
}

func (r *ShoeRepository) Create(ctx context.Context, shoe *domain.Shoe) (*domain.Shoe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rec := shoeRecord{
		ShoeType:        string(shoe.Type),
		Size:            shoe.Size,
		Price:           shoe.Price,
		ProductionPrice: shoe.ProductionPrice,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("insert shoe: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *ShoeRepository) List(ctx context.Context) ([]*domain.Shoe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var recs []shoeRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list shoes: %w", err)
	}
	out := make([]*domain.Shoe, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateBatch inserts orders and writes the assigned ids back.
func (r *OrderRepository) CreateBatch(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	recs := make([]orderRecord, len(orders))
	for i, o := range orders {
		recs[i] = orderRecord{
			ShoeID:      o.ShoeID,
			Status:      string(o.Status),
			Description: o.Description,
			OrderDate:   o.Date,
			Quantity:    o.Quantity,
		}
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&recs, batchSize).Error
	if err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}
	for i := range recs {
		orders[i].ID = recs[i].ID
	}
	return nil
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var recs []orderRecord
	if err := r.db.WithContext(ctx).Preload("Shoe").Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]*domain.Order, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, txs []*domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	recs := make([]transactionRecord, len(txs))
	for i, t := range txs {
		recs[i] = transactionRecord{
			OrderID:         t.OrderID,
			AmountCents:     int64(t.Amount),
			TransactionDate: t.TransactionDate,
			PaymentMethod:   string(t.PaymentMethod),
			Status:          string(t.Status),
		}
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&recs, batchSize).Error
	if err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	for i := range recs {
		txs[i].ID = recs[i].ID
	}
	return nil
}

func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var recs []transactionRecord
	if err := r.db.WithContext(ctx).Preload("Order.Shoe").Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]*domain.Transaction, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}
