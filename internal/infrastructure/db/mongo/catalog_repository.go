package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

type shoeDoc struct {
	ID              int64  `bson:"_id"`
	Type            string `bson:"type"`
	Size            int    `bson:"size"`
	Price           int64  `bson:"price"`
	ProductionPrice int64  `bson:"production_price"`
}

func (d *shoeDoc) toDomain() *domain.Shoe {
	return &domain.Shoe{
		ID:              d.ID,
		Type:            domain.ShoeType(d.Type),
		Size:            d.Size,
		Price:           d.Price,
		ProductionPrice: d.ProductionPrice,
	}
}

type orderDoc struct {
	ID          int64     `bson:"_id"`
	ShoeID      int64     `bson:"shoe_id"`
	Shoe        *shoeDoc  `bson:"shoe,omitempty"`
	Status      string    `bson:"status"`
	Description string    `bson:"description,omitempty"`
	Date        time.Time `bson:"date"`
	Quantity    int       `bson:"quantity"`
}

func (d *orderDoc) toDomain() *domain.Order {
	o := &domain.Order{
		ID:          d.ID,
		ShoeID:      d.ShoeID,
		Status:      domain.OrderStatus(d.Status),
		Description: d.Description,
		Date:        d.Date.UTC(),
		Quantity:    d.Quantity,
	}
	if d.Shoe != nil {
		o.Shoe = d.Shoe.toDomain()
	}
	return o
}

type transactionDoc struct {
	ID              int64     `bson:"_id"`
	OrderID         int64     `bson:"order_id"`
	Order           *orderDoc `bson:"order,omitempty"`
	AmountCents     int64     `bson:"amount_cents"`
	TransactionDate time.Time `bson:"transaction_date"`
	PaymentMethod   string    `bson:"payment_method"`
	Status          string    `bson:"status"`
}

func (d *transactionDoc) toDomain() *domain.Transaction {
	t := &domain.Transaction{
		ID:              d.ID,
		OrderID:         d.OrderID,
		Amount:          domain.Money(d.AmountCents),
		TransactionDate: d.TransactionDate.UTC(),
		PaymentMethod:   domain.PaymentMethod(d.PaymentMethod),
		Status:          domain.TransactionStatus(d.Status),
	}
	if d.Order != nil {
		t.Order = d.Order.toDomain()
	}
	return t
}

type ShoeRepository struct {
	col *mongo.Collection
	ids *sequence
}

func NewShoeRepository(db *mongo.Database) *ShoeRepository {
	return &ShoeRepository{col: db.Collection(collectionShoes), ids: newSequence(db, collectionShoes)}
}

func (r *ShoeRepository) Create(ctx context.Context, shoe *domain.Shoe) (*domain.Shoe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.reserve(ctx, 1)
	if err != nil {
		return nil, err
	}
	doc := shoeDoc{ID: id, Type: string(shoe.Type), Size: shoe.Size, Price: shoe.Price, ProductionPrice: shoe.ProductionPrice}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert shoe: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ShoeRepository) List(ctx context.Context) ([]*domain.Shoe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list shoes: %w", err)
	}
	var docs []shoeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode shoes: %w", err)
	}
	out := make([]*domain.Shoe, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

type OrderRepository struct {
	col *mongo.Collection
	ids *sequence
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders), ids: newSequence(db, collectionOrders)}
}

func (r *OrderRepository) CreateBatch(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	first, err := r.ids.reserve(ctx, len(orders))
	if err != nil {
		return err
	}
	docs := make([]any, len(orders))
	for i, o := range orders {
		o.ID = first + int64(i)
		docs[i] = orderDoc{
			ID:          o.ID,
			ShoeID:      o.ShoeID,
			Status:      string(o.Status),
			Description: o.Description,
			Date:        o.Date,
			Quantity:    o.Quantity,
		}
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}
	return nil
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		lookupOne(collectionShoes, "shoe_id", "shoe"),
		unwindOptional("$shoe"),
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	out := make([]*domain.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

type TransactionRepository struct {
	col *mongo.Collection
	ids *sequence
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{col: db.Collection(collectionTransactions), ids: newSequence(db, collectionTransactions)}
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, txs []*domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	first, err := r.ids.reserve(ctx, len(txs))
	if err != nil {
		return err
	}
	docs := make([]any, len(txs))
	for i, t := range txs {
		t.ID = first + int64(i)
		docs[i] = transactionDoc{
			ID:              t.ID,
			OrderID:         t.OrderID,
			AmountCents:     int64(t.Amount),
			TransactionDate: t.TransactionDate,
			PaymentMethod:   string(t.PaymentMethod),
			Status:          string(t.Status),
		}
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		lookupOne(collectionOrders, "order_id", "order"),
		unwindOptional("$order"),
		lookupOne(collectionShoes, "order.shoe_id", "order.shoe"),
		unwindOptional("$order.shoe"),
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	var docs []transactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	out := make([]*domain.Transaction, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func lookupOne(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

func unwindOptional(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: path},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}
