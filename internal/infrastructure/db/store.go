// Package db opens the configured persistence backend and hands back the
// repositories every service depends on.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/algo/shoe-inventory/internal/core/ports"
	mongostore "github.com/algo/shoe-inventory/internal/infrastructure/db/mongo"
	"github.com/algo/shoe-inventory/internal/infrastructure/db/sqlstore"
	"github.com/algo/shoe-inventory/internal/infrastructure/http/handlers"
)

// DriverMongo selects the MongoDB backend. Every other driver name is handed
// to sqlstore.
const DriverMongo = "mongo"

type Config struct {
	Driver        string
	DSN           string
	MongoURI      string
	MongoDatabase string
	Logger        zerolog.Logger
}

// Repositories bundles one backend's repositories with its readiness check
// and a Close func that releases the connection.
type Repositories struct {
	Users        ports.UserRepository
	Shoes        ports.ShoeRepository
	Orders       ports.OrderRepository
	Transactions ports.TransactionRepository
	Check        handlers.Check
	Close        func()
}

// Open connects to the backend named by cfg.Driver. Relational stores are
// migrated, MongoDB gets its indexes.
func Open(ctx context.Context, cfg Config) (*Repositories, error) {
	if cfg.Driver == DriverMongo {
		return openMongo(ctx, cfg)
	}
	return openSQL(ctx, cfg)
}

func openSQL(ctx context.Context, cfg Config) (*Repositories, error) {
	gdb, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver: cfg.Driver,
		DSN:    cfg.DSN,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Users:        sqlstore.NewUserRepository(gdb),
		Shoes:        sqlstore.NewShoeRepository(gdb),
		Orders:       sqlstore.NewOrderRepository(gdb),
		Transactions: sqlstore.NewTransactionRepository(gdb),
		Check: handlers.Check{
			Name: cfg.Driver,
			Ping: func(ctx context.Context) error { return sqlstore.Ping(ctx, gdb) },
		},
		Close: func() {
			if err := sqlstore.Close(gdb); err != nil {
				cfg.Logger.Error().Err(err).Msg("close relational store")
			}
		},
	}, nil
}

func openMongo(ctx context.Context, cfg Config) (*Repositories, error) {
	client, mdb, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
	})
	if err != nil {
		return nil, err
	}
	if err := mongostore.EnsureIndexes(ctx, mdb); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}
	cfg.Logger.Info().Str("database", cfg.MongoDatabase).Msg("mongo store ready")

	return &Repositories{
		Users:        mongostore.NewUserRepository(mdb),
		Shoes:        mongostore.NewShoeRepository(mdb),
		Orders:       mongostore.NewOrderRepository(mdb),
		Transactions: mongostore.NewTransactionRepository(mdb),
		Check: handlers.Check{
			Name: DriverMongo,
			Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		},
		Close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				cfg.Logger.Error().Err(err).Msg("disconnect mongo")
			}
		},
	}, nil
}
