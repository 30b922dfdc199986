package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: ":memory:", Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func newUser(name string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle", DSN: "x", Logger: zerolog.Nop()})
	require.Error(t, err)

	_, err = Open(context.Background(), Config{Driver: DriverSQLite, DSN: "", Logger: zerolog.Nop()})
	require.Error(t, err)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Migrate(context.Background(), db, DriverSQLite))
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	created, err := repo.Create(ctx, newUser("alice"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.Enabled)
	assert.False(t, created.Locked)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "alice@example.com", found.Email)
	assert.Equal(t, domain.RoleUser, found.Role)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	_, err := repo.Create(ctx, newUser("bob"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newUser("bob"))
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestUserRepository_UsernamesAreCaseSensitive(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, newUser("alice"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newUser("Alice"))
	require.NoError(t, err)

	_, err = repo.FindByUsername(ctx, "ALICE")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMigrations_MySQLUsernameIsBinaryCollated(t *testing.T) {
	data, err := migrationsFS.ReadFile("migrations/mysql/00001_init.sql")
	require.NoError(t, err)

	var usernameCol string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "username ") {
			usernameCol = line
			break
		}
	}
	require.NotEmpty(t, usernameCol)
	assert.Contains(t, usernameCol, "COLLATE utf8mb4_bin")
}

func TestUserRepository_ConcurrentCreateOneWins(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	const workers = 10
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, newUser("race"))
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrUserExists):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, dup)
}

func TestUserRepository_UpdateAccountState(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	_, err := repo.Create(ctx, newUser("carol"))
	require.NoError(t, err)

	updated, err := repo.UpdateAccountState(ctx, "carol", false, true)
	require.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.True(t, updated.Locked)

	_, err = repo.UpdateAccountState(ctx, "ghost", true, false)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	for _, name := range []string{"ann", "ben", "cid"} {
		_, err := repo.Create(ctx, newUser(name))
		require.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "ann", users[0].Username)
	assert.Equal(t, "cid", users[2].Username)
}

func TestCatalogRepositories_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	shoes := NewShoeRepository(db)
	orders := NewOrderRepository(db)
	txs := NewTransactionRepository(db)

	shoe, err := shoes.Create(ctx, &domain.Shoe{Type: domain.ShoeLoafers, Size: 39, Price: 144, ProductionPrice: 120})
	require.NoError(t, err)

	day := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	batch := make([]*domain.Order, 0, 3)
	for i := 0; i < 3; i++ {
		batch = append(batch, &domain.Order{
			ShoeID:   shoe.ID,
			Status:   domain.OrderDone,
			Date:     day,
			Quantity: i + 1,
		})
	}
	batch[2].Status = domain.OrderReturned
	batch[2].Description = "Wrong size"
	require.NoError(t, orders.CreateBatch(ctx, batch))
	for _, o := range batch {
		assert.NotZero(t, o.ID, "order id not written back")
	}

	require.NoError(t, txs.CreateBatch(ctx, []*domain.Transaction{{
		OrderID:         batch[0].ID,
		Amount:          domain.MoneyFromUnits(144),
		TransactionDate: day,
		PaymentMethod:   domain.PaymentCash,
		Status:          domain.TransactionCompleted,
	}}))

	listed, err := orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	require.NotNil(t, listed[0].Shoe)
	assert.Equal(t, domain.ShoeLoafers, listed[0].Shoe.Type)
	assert.True(t, day.Equal(listed[0].Date), "order date %v", listed[0].Date)
	assert.Equal(t, domain.OrderReturned, listed[2].Status)
	assert.Equal(t, "Wrong size", listed[2].Description)

	tlist, err := txs.List(ctx)
	require.NoError(t, err)
	require.Len(t, tlist, 1)
	assert.Equal(t, "144.00", tlist[0].Amount.String())
	require.NotNil(t, tlist[0].Order)
	assert.Equal(t, shoe.ID, tlist[0].Order.ShoeID)
}

func TestOrderRepository_RejectsUnknownShoe(t *testing.T) {
	ctx := context.Background()
	orders := NewOrderRepository(setupTestDB(t))

	err := orders.CreateBatch(ctx, []*domain.Order{{ShoeID: 999, Status: domain.OrderDone, Date: time.Now(), Quantity: 1}})
	assert.Error(t, err, "foreign key should reject a missing shoe")
}

func TestIsUniqueViolation(t *testing.T) {
	cases := map[string]bool{
		"UNIQUE constraint failed: users.username":                       true,
		"ERROR: duplicate key value violates unique constraint":          true,
		"Error 1062: Duplicate entry 'bob' for key 'idx_users_username'": true,
		"connection refused": false,
	}
	for msg, want := range cases {
		assert.Equal(t, want, isUniqueViolation(errors.New(msg)), msg)
	}
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", gorm.ErrDuplicatedKey)))
}
