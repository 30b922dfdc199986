// Package seed fills an empty store with a demo catalog, a year-like order
// history and the accounts used to explore the API.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/algo/shoe-inventory/internal/core/domain"
	"github.com/algo/shoe-inventory/internal/core/ports"
	"github.com/algo/shoe-inventory/internal/core/service"
)

const (
	DemoUsername = "andrzej"
	DemoEmail    = "def@gmail.com"
	DemoPassword = "password123"

	variantsPerType = 4
	markup          = 1.2
)

var sizes = []int{38, 39}

var returnReasons = []string{
	"Too small",
	"Too big",
	"Uncomfortable fit",
	"Different color than expected",
	"Mechanical damage after delivery",
	"Wrong pair (two different sizes)",
	"Different model than ordered",
	"Poor build quality",
	"Too stiff sole",
	"Too narrow in the midfoot",
	"Too wide in the midfoot",
	"Missing an item (e.g., shoelaces)",
	"Stitching defects",
	"Stains / dirt",
	"Delayed delivery, purchase no longer relevant",
	"Customer changed their mind",
	"Doesn't match outfit",
	"Too heavy",
	"Unpleasant odor from the material",
	"Complaint, squeaks when walking",
}

// Options drives a seeding run. From and To are inclusive calendar days.
type Options struct {
	From time.Time
	To   time.Time

	// AdminUsername is created with ROLE_ADMIN when AdminPassword is set.
	AdminUsername string
	AdminPassword string

	BcryptCost int
	Rand       *rand.Rand
}

// Summary reports what a run wrote.
type Summary struct {
	UsersCreated int
	Shoes        int
	Orders       int
	Transactions int
}

type Seeder struct {
	users        ports.UserRepository
	shoes        ports.ShoeRepository
	orders       ports.OrderRepository
	transactions ports.TransactionRepository
	logger       zerolog.Logger
}

func New(users ports.UserRepository, shoes ports.ShoeRepository, orders ports.OrderRepository,
	transactions ports.TransactionRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{users: users, shoes: shoes, orders: orders, transactions: transactions, logger: logger}
}

// Run creates the demo accounts when missing. The order history is generated
// only when the store holds no orders yet, on top of any existing catalog.
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	if opts.To.Before(opts.From) {
		return sum, fmt.Errorf("seed: end date %s is before start date %s",
			opts.To.Format(time.DateOnly), opts.From.Format(time.DateOnly))
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	created, err := s.ensureUser(ctx, DemoUsername, DemoEmail, DemoPassword, domain.RoleUser, cost)
	if err != nil {
		return sum, err
	}
	if created {
		sum.UsersCreated++
	}
	if opts.AdminUsername != "" && opts.AdminPassword != "" {
		created, err := s.ensureUser(ctx, opts.AdminUsername, opts.AdminUsername+"@localhost", opts.AdminPassword, domain.RoleAdmin, cost)
		if err != nil {
			return sum, err
		}
		if created {
			sum.UsersCreated++
		}
	}

	existingOrders, err := s.orders.List(ctx)
	if err != nil {
		return sum, fmt.Errorf("seed: list orders: %w", err)
	}
	if len(existingOrders) > 0 {
		s.logger.Info().Int("orders", len(existingOrders)).Msg("order history already present, skipping")
		return sum, nil
	}

	// A run that failed after writing the catalog left shoes but no orders.
	catalog, err := s.shoes.List(ctx)
	if err != nil {
		return sum, fmt.Errorf("seed: list shoes: %w", err)
	}
	if len(catalog) > 0 {
		s.logger.Info().Int("shoes", len(catalog)).Msg("reusing existing catalog")
	} else {
		if catalog, err = s.seedCatalog(ctx, rng); err != nil {
			return sum, err
		}
		sum.Shoes = len(catalog)
	}

	orders, txs, err := s.seedHistory(ctx, rng, catalog, dayOf(opts.From), dayOf(opts.To))
	sum.Orders, sum.Transactions = orders, txs
	if err != nil {
		return sum, err
	}

	s.logger.Info().
		Int("shoes", sum.Shoes).
		Int("orders", sum.Orders).
		Int("transactions", sum.Transactions).
		Msg("order history generated")
	return sum, nil
}

func (s *Seeder) ensureUser(ctx context.Context, username, email, password string, role domain.Role, cost int) (bool, error) {
	name, err := service.NormalizeUsername(username)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	_, err = s.users.FindByUsername(ctx, name)
	if err == nil {
		s.logger.Info().Str("username", name).Msg("user already exists")
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("seed: find %s: %w", name, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return false, fmt.Errorf("seed: hash password: %w", err)
	}
	now := time.Now().UTC()
	_, err = s.users.Create(ctx, &domain.User{
		Username:     name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed: create %s: %w", name, err)
	}
	s.logger.Info().Str("username", name).Str("role", string(role)).Msg("user created")
	return true, nil
}

func (s *Seeder) seedCatalog(ctx context.Context, rng *rand.Rand) ([]*domain.Shoe, error) {
	catalog := make([]*domain.Shoe, 0, len(domain.ShoeTypes)*variantsPerType*len(sizes))
	for _, typ := range domain.ShoeTypes {
		for range variantsPerType {
			base := 90 + rng.IntN(80)
			for _, size := range sizes {
				production := int64(base + rng.IntN(40))
				shoe, err := s.shoes.Create(ctx, &domain.Shoe{
					Type:            typ,
					Size:            size,
					Price:           RetailPrice(production),
					ProductionPrice: production,
				})
				if err != nil {
					return nil, fmt.Errorf("seed: create shoe: %w", err)
				}
				catalog = append(catalog, shoe)
			}
		}
	}
	return catalog, nil
}

// seedHistory writes one batch of orders per day, then one completed
// transaction per DONE order of that day.
func (s *Seeder) seedHistory(ctx context.Context, rng *rand.Rand, catalog []*domain.Shoe, from, to time.Time) (int, int, error) {
	lastMonth := monthOf(to)
	var nOrders, nTxs int

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		inLastMonth := monthOf(day).Equal(lastMonth)

		var batch []*domain.Order
		for _, shoe := range catalog {
			for _, status := range dailyStatuses(rng, inLastMonth) {
				order := &domain.Order{
					ShoeID:   shoe.ID,
					Shoe:     shoe,
					Status:   status,
					Date:     day,
					Quantity: 1 + rng.IntN(3),
				}
				if status == domain.OrderReturned {
					order.Description = returnReasons[rng.IntN(len(returnReasons))]
				}
				batch = append(batch, order)
			}
		}
		if err := s.orders.CreateBatch(ctx, batch); err != nil {
			return nOrders, nTxs, fmt.Errorf("seed: orders for %s: %w", day.Format(time.DateOnly), err)
		}
		nOrders += len(batch)

		var txs []*domain.Transaction
		for _, o := range batch {
			if o.Status != domain.OrderDone {
				continue
			}
			txs = append(txs, &domain.Transaction{
				OrderID:         o.ID,
				Amount:          domain.MoneyFromUnits(o.Shoe.Price * int64(o.Quantity)),
				TransactionDate: day.Add(time.Duration(rng.IntN(24*60)) * time.Minute),
				PaymentMethod:   domain.PaymentMethods[rng.IntN(len(domain.PaymentMethods))],
				Status:          domain.TransactionCompleted,
			})
		}
		if len(txs) > 0 {
			if err := s.transactions.CreateBatch(ctx, txs); err != nil {
				return nOrders, nTxs, fmt.Errorf("seed: transactions for %s: %w", day.Format(time.DateOnly), err)
			}
		}
		nTxs += len(txs)
	}
	return nOrders, nTxs, nil
}

// dailyStatuses returns the shuffled statuses of one shoe's orders on one day:
// 10 to 14 orders, 30 to 50 percent RETURNED, and in the last month 10 percent
// of the rest IN_PROGRESS.
func dailyStatuses(rng *rand.Rand, lastMonth bool) []domain.OrderStatus {
	total := 10 + rng.IntN(5)
	returned := int(math.Round(float64(total) * (0.30 + rng.Float64()*0.20)))
	inProgress := 0
	if lastMonth {
		inProgress = int(math.Round(float64(total-returned) * 0.10))
	}

	statuses := make([]domain.OrderStatus, 0, total)
	for i := 0; i < total; i++ {
		switch {
		case i < returned:
			statuses = append(statuses, domain.OrderReturned)
		case i < returned+inProgress:
			statuses = append(statuses, domain.OrderInProgress)
		default:
			statuses = append(statuses, domain.OrderDone)
		}
	}
	rng.Shuffle(len(statuses), func(i, j int) {
		statuses[i], statuses[j] = statuses[j], statuses[i]
	})
	return statuses
}

// RetailPrice applies the standard markup and rounds to whole units.
func RetailPrice(production int64) int64 {
	return int64(math.Round(float64(production) * markup))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
