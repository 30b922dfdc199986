package seed

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/algo/shoe-inventory/internal/core/domain"
	"github.com/algo/shoe-inventory/internal/core/ports"
	"github.com/algo/shoe-inventory/internal/infrastructure/db"
)

func newTestSeeder(t *testing.T) (*Seeder, *db.Repositories) {
	t.Helper()
	repos, err := db.Open(context.Background(), db.Config{Driver: "sqlite", DSN: ":memory:", Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(repos.Close)
	return New(repos.Users, repos.Shoes, repos.Orders, repos.Transactions, zerolog.Nop()), repos
}

func TestSeeder_Run(t *testing.T) {
	s, repos := newTestSeeder(t)
	ctx := context.Background()
	from := time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	sum, err := s.Run(ctx, Options{
		From:          from,
		To:            to,
		AdminUsername: "root",
		AdminPassword: "rootpw",
		BcryptCost:    bcrypt.MinCost,
		Rand:          rand.New(rand.NewPCG(1, 2)),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.UsersCreated)
	assert.Equal(t, len(domain.ShoeTypes)*variantsPerType*len(sizes), sum.Shoes)
	days := 3
	assert.GreaterOrEqual(t, sum.Orders, sum.Shoes*days*10)
	assert.LessOrEqual(t, sum.Orders, sum.Shoes*days*14)

	shoes, err := repos.Shoes.List(ctx)
	require.NoError(t, err)
	for _, shoe := range shoes {
		assert.Contains(t, sizes, shoe.Size)
		assert.GreaterOrEqual(t, shoe.ProductionPrice, int64(90))
		assert.Less(t, shoe.ProductionPrice, int64(90+80+40))
		assert.Equal(t, RetailPrice(shoe.ProductionPrice), shoe.Price)
	}

	orders, err := repos.Orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, sum.Orders)
	done := 0
	for _, o := range orders {
		switch o.Status {
		case domain.OrderDone:
			done++
		case domain.OrderReturned:
			assert.Contains(t, returnReasons, o.Description)
		case domain.OrderInProgress:
			assert.Equal(t, 11, int(o.Date.Month()), "in-progress orders only in the final month")
		}
		assert.True(t, o.Quantity >= 1 && o.Quantity <= 3)
	}

	txs, err := repos.Transactions.List(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, done)
	assert.Equal(t, done, sum.Transactions)
	for _, tx := range txs {
		require.NotNil(t, tx.Order)
		require.NotNil(t, tx.Order.Shoe)
		assert.Equal(t, domain.MoneyFromUnits(tx.Order.Shoe.Price*int64(tx.Order.Quantity)), tx.Amount)
		assert.Equal(t, domain.TransactionCompleted, tx.Status)
	}

	admin, err := repos.Users.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	demo, err := repos.Users.FindByUsername(ctx, DemoUsername)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(demo.PasswordHash), []byte(DemoPassword)))
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	s, repos := newTestSeeder(t)
	ctx := context.Background()
	day := time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	opts := Options{From: day, To: day, BcryptCost: bcrypt.MinCost, Rand: rand.New(rand.NewPCG(3, 4))}

	first, err := s.Run(ctx, opts)
	require.NoError(t, err)
	require.Equal(t, 1, first.UsersCreated)

	second, err := s.Run(ctx, opts)
	require.NoError(t, err)
	assert.Zero(t, second.UsersCreated)
	assert.Zero(t, second.Orders)

	orders, err := repos.Orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, first.Orders)
}

type failingOrders struct {
	ports.OrderRepository
}

func (failingOrders) CreateBatch(context.Context, []*domain.Order) error {
	return errors.New("disk full")
}

func TestSeeder_RecoversFromFailedHistory(t *testing.T) {
	_, repos := newTestSeeder(t)
	ctx := context.Background()
	day := time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	opts := Options{From: day, To: day, BcryptCost: bcrypt.MinCost, Rand: rand.New(rand.NewPCG(5, 6))}

	broken := New(repos.Users, repos.Shoes, failingOrders{repos.Orders}, repos.Transactions, zerolog.Nop())
	_, err := broken.Run(ctx, opts)
	require.Error(t, err)

	shoes, err := repos.Shoes.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, shoes, "catalog written before the failure")

	retry := New(repos.Users, repos.Shoes, repos.Orders, repos.Transactions, zerolog.Nop())
	sum, err := retry.Run(ctx, opts)
	require.NoError(t, err)
	assert.Zero(t, sum.Shoes, "existing catalog is reused")
	assert.Positive(t, sum.Orders)

	after, err := repos.Shoes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(shoes))

	orders, err := repos.Orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, sum.Orders)
}

func TestSeeder_RejectsInvertedRange(t *testing.T) {
	s, _ := newTestSeeder(t)
	day := time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	_, err := s.Run(context.Background(), Options{From: day, To: day.AddDate(0, 0, -1)})
	assert.Error(t, err)
}

func TestDailyStatuses(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for range 200 {
		statuses := dailyStatuses(rng, false)
		require.True(t, len(statuses) >= 10 && len(statuses) <= 14)

		returned := 0
		for _, st := range statuses {
			require.NotEqual(t, domain.OrderInProgress, st)
			if st == domain.OrderReturned {
				returned++
			}
		}
		ratio := float64(returned) / float64(len(statuses))
		assert.True(t, ratio >= 0.25 && ratio <= 0.55, "returned ratio %.2f", ratio)
	}
}

func TestRetailPrice(t *testing.T) {
	assert.Equal(t, int64(120), RetailPrice(100))
	assert.Equal(t, int64(110), RetailPrice(92)) // 110.4
	assert.Equal(t, int64(111), RetailPrice(93)) // 111.6
}
