package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/algo/shoe-inventory/docs"
	"github.com/algo/shoe-inventory/internal/api/handler"
	"github.com/algo/shoe-inventory/internal/api/middleware"
	"github.com/algo/shoe-inventory/internal/core/domain"
	"github.com/algo/shoe-inventory/internal/core/ports"
	"github.com/algo/shoe-inventory/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs. Services are built by the
// caller so the router stays independent of the storage backend.
type Dependencies struct {
	Auth         ports.AuthService
	Users        ports.UserService
	Shoes        ports.ShoeService
	Orders       ports.OrderService
	Transactions ports.TransactionService
	Tokens       ports.TokenService
	Policy       *domain.Policy
	HealthChecks []handlers.Check
	Logger       zerolog.Logger

	// AuthRateLimit is requests per second per client IP on /api/v1/auth.
	// Zero or less disables the limiter.
	AuthRateLimit float64
	AuthRateBurst int

	// StaticDir is served under /static when set.
	StaticDir string

	// CORSAllowedOrigins enables CORS for these origins. Empty disables it.
	CORSAllowedOrigins []string
	// TrustProxy reads the client IP from X-Forwarded-For sent by a
	// private-network proxy. Otherwise only the socket address counts.
	TrustProxy bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	policy := deps.Policy
	if policy == nil {
		policy = domain.DefaultPolicy()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()
	if deps.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(deps.Logger))
	if len(deps.CORSAllowedOrigins) > 0 {
		// Preflights are answered here and never reach the access policy.
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: deps.CORSAllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPatch},
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderOrigin},
			MaxAge:       1800,
		}))
	}
	e.Use(middleware.Authenticate(deps.Tokens, deps.Logger))
	e.Use(middleware.Authorize(policy))

	authHandler := handler.NewAuthHandler(deps.Auth)
	catalogHandler := handler.NewCatalogHandler(deps.Shoes, deps.Orders, deps.Transactions)
	userHandler := handler.NewUserHandler(deps.Users)
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Logger, deps.HealthChecks...)

	// --- Health probes and operations ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if deps.StaticDir != "" {
		e.Static("/static", deps.StaticDir)
	}

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Liveness)

	// --- Auth routes ---
	auth := v1.Group("/auth")
	if deps.AuthRateLimit > 0 {
		auth.Use(authRateLimiter(deps.AuthRateLimit, deps.AuthRateBurst))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Inventory ---
	v1.GET("/shoes", catalogHandler.ShoesStatus)
	v1.GET("/shoes/all", catalogHandler.ListShoes)
	v1.GET("/orders", catalogHandler.OrdersStatus)
	v1.GET("/orders/all", catalogHandler.ListOrders)
	v1.GET("/transactions", catalogHandler.TransactionsStatus)
	v1.GET("/transactions/all", catalogHandler.ListTransactions)

	// --- Accounts ---
	authorized := v1.Group("/authorized")
	authorized.GET("/user", userHandler.CurrentUser)
	admin := authorized.Group("/admin")
	admin.GET("/users", userHandler.ListUsers)
	admin.PATCH("/users/:username", userHandler.UpdateAccountState)

	return e
}

// authRateLimiter throttles register and login per client IP with an
// in-memory token bucket.
func authRateLimiter(limit float64, burst int) echo.MiddlewareFunc {
	if burst <= 0 {
		burst = max(1, int(limit))
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}
