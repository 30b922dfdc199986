package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=15s"`
	StaticDir       string        `env:"STATIC_DIR"`
	PolicyFile      string        `env:"POLICY_FILE"`

	// CORSAllowedOrigins is a comma-separated list; "*" allows any origin.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=*"`
	// TrustProxy takes the client IP from X-Forwarded-For when the direct
	// peer is a loopback, link-local or private address. Otherwise the
	// socket address is used and forwarding headers are ignored.
	TrustProxy bool `env:"TRUST_PROXY, default=false"`

	Auth  AuthConfig
	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET"`
	JWTTTL           time.Duration `env:"JWT_TTL,            default=24h"`
	JWTIssuer        string        `env:"JWT_ISSUER,         default=shoe-inventory"`
	BcryptCost       int           `env:"BCRYPT_COST,        default=10"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LoginCooldown    time.Duration `env:"LOGIN_COOLDOWN,     default=15m"`
	RateLimit        float64       `env:"AUTH_RATE_LIMIT,    default=5"`
	RateBurst        int           `env:"AUTH_RATE_BURST,    default=10"`
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=sqlite"`
	DSN    string `env:"DATABASE_URL, default=file:shoe-inventory.db?_busy_timeout=5000"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shoe_inventory"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED,  default=false"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

var knownDrivers = map[string]bool{
	"postgres": true,
	"mysql":    true,
	"sqlite":   true,
	"mongo":    true,
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.Auth.JWTTTL < time.Second {
		return fmt.Errorf("JWT_TTL must be at least 1s, got %s", c.Auth.JWTTTL)
	}
	if !knownDrivers[c.Store.Driver] {
		return fmt.Errorf("STORE_DRIVER %q is not one of postgres, mysql, sqlite, mongo", c.Store.Driver)
	}
	return nil
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// SeedConfig is the part of the environment the demo-data seeder reads.
type SeedConfig struct {
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	BcryptCost int    `env:"BCRYPT_COST, default=10"`

	Store StoreConfig
	Mongo MongoConfig
}

// LoadSeed reads SeedConfig through l.
func LoadSeed(ctx context.Context, l envconfig.Lookuper) (*SeedConfig, error) {
	var cfg SeedConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if !knownDrivers[cfg.Store.Driver] {
		return nil, fmt.Errorf("config: STORE_DRIVER %q is not one of postgres, mysql, sqlite, mongo", cfg.Store.Driver)
	}
	return &cfg, nil
}
