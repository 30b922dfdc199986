// Command api serves the shoe inventory REST API.
//
// @title                      Shoe Inventory API
// @version                    1.0
// @description                Footwear inventory backend with token authentication and path-based access control.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs --parseInternal

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/algo/shoe-inventory/internal/api"
	"github.com/algo/shoe-inventory/internal/core/ports"
	"github.com/algo/shoe-inventory/internal/core/service"
	"github.com/algo/shoe-inventory/internal/infrastructure/db"
	redisstore "github.com/algo/shoe-inventory/internal/infrastructure/db/redis"
	"github.com/algo/shoe-inventory/internal/infrastructure/http/handlers"
	"github.com/algo/shoe-inventory/internal/pkg/config"
	"github.com/algo/shoe-inventory/pkg/logger"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "shoe-inventory",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
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

	checks := []handlers.Check{repos.Check}

	var limiter ports.LoginLimiter
	if cfg.Redis.Enabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		limiter = redisstore.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginCooldown)
		checks = append(checks, handlers.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttle enabled")
	}

	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.JWTTTL,
		Issuer: cfg.Auth.JWTIssuer,
	})
	if err != nil {
		return err
	}
	auth, err := service.NewAuthService(repos.Users, tokens, limiter, cfg.Auth.BcryptCost, log)
	if err != nil {
		return err
	}
	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Auth:          auth,
		Users:         service.NewUserService(repos.Users, log),
		Shoes:         service.NewShoeService(repos.Shoes),
		Orders:        service.NewOrderService(repos.Orders),
		Transactions:  service.NewTransactionService(repos.Transactions),
		Tokens:        tokens,
		Policy:        policy,
		HealthChecks:  checks,
		Logger:        log,
		AuthRateLimit: cfg.Auth.RateLimit,
		AuthRateBurst: cfg.Auth.RateBurst,
		StaticDir:     cfg.StaticDir,

		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		TrustProxy:         cfg.TrustProxy,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("server stopped")
	return nil
}
