// Command seed fills the configured store with demo accounts, a shoe catalog
// and a generated order history.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/term"

	"github.com/algo/shoe-inventory/internal/infrastructure/db"
	"github.com/algo/shoe-inventory/internal/pkg/config"
	"github.com/algo/shoe-inventory/internal/seed"
	"github.com/algo/shoe-inventory/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run() error {
	today := time.Now().UTC().Format(time.DateOnly)
	var (
		seedValue = flag.Uint64("seed", 0, "random seed; 0 picks one at random")
		fromFlag  = flag.String("from", "", "first day of the order history (YYYY-MM-DD); defaults to one month before -to")
		toFlag    = flag.String("to", today, "last day of the order history (YYYY-MM-DD)")
		admin     = flag.String("admin", "", "also create an admin account with this username")
		adminPass = flag.String("admin-password", "", "admin password; falls back to ADMIN_PASSWORD, then a prompt")
	)
	flag.Parse()

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadSeed(ctx, envconfig.OsLookuper())
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "shoe-inventory-seed",
	})

	to, err := time.Parse(time.DateOnly, *toFlag)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}
	from := to.AddDate(0, -1, 0)
	if *fromFlag != "" {
		if from, err = time.Parse(time.DateOnly, *fromFlag); err != nil {
			return fmt.Errorf("-from: %w", err)
		}
	}

	password := ""
	if *admin != "" {
		if password, err = adminPassword(*adminPass); err != nil {
			return err
		}
	}

	s1, s2 := *seedValue, *seedValue
	if s1 == 0 {
		s1, s2 = rand.Uint64(), rand.Uint64()
	}
	log.Info().Uint64("seed", s1).Str("from", from.Format(time.DateOnly)).Str("to", to.Format(time.DateOnly)).Msg("seeding")

	repos, err := db.Open(ctx, db.Config{
		Driver:        cfg.Store.Driver,
		DSN:           cfg.Store.DSN,
		MongoURI:      cfg.Mongo.URI,
		MongoDatabase: cfg.Mongo.Database,
		Logger:        log,
	})
	if err != nil {
		return err
	}
	defer repos.Close()

	sum, err := seed.New(repos.Users, repos.Shoes, repos.Orders, repos.Transactions, log).Run(ctx, seed.Options{
		From:          from,
		To:            to,
		AdminUsername: *admin,
		AdminPassword: password,
		BcryptCost:    cfg.BcryptCost,
		Rand:          rand.New(rand.NewPCG(s1, s2)),
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("users", sum.UsersCreated).
		Int("shoes", sum.Shoes).
		Int("orders", sum.Orders).
		Int("transactions", sum.Transactions).
		Msg("seed complete")
	return nil
}

// adminPassword resolves the admin password from the flag, the
// ADMIN_PASSWORD variable or an interactive prompt, in that order.
func adminPassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("ADMIN_PASSWORD"); env != "" {
		return env, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", errors.New("admin password required: use -admin-password, ADMIN_PASSWORD or a terminal")
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "Admin password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read admin password: %w", err)
	}
	if len(pw) == 0 {
		return "", errors.New("admin password must not be empty")
	}
	return string(pw), nil
}
