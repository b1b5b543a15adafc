package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/congo-pay/pocketbank/internal/auth"
	"github.com/congo-pay/pocketbank/internal/config"
	"github.com/congo-pay/pocketbank/internal/funding"
	"github.com/congo-pay/pocketbank/internal/identity"
	"github.com/congo-pay/pocketbank/internal/ledger"
	"github.com/congo-pay/pocketbank/internal/middleware"
	"github.com/congo-pay/pocketbank/internal/notification"
	"github.com/congo-pay/pocketbank/internal/payments"
	"github.com/congo-pay/pocketbank/internal/records"
	"github.com/congo-pay/pocketbank/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg      config.Config
	Store    *records.Store
	Cache    *redis.Client
	Notifier notification.Notifier
	Logger   *slog.Logger
	// Ping reports the health of each backing connection by name.
	Ping func(ctx context.Context) map[string]error
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Store == nil {
		return fmt.Errorf("record store is required")
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Notifier == nil {
		d.Notifier = notification.NewLoggerNotifier(d.Logger)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	engine := ledger.NewEngine(d.Store, d.Logger)
	identitySvc := identity.NewService(d.Store, identity.HasherFor(d.Cfg.PasswordMode), d.Logger)
	tokenSvc := auth.NewService(d.Cfg.JWTSecret, d.Cfg.AccessTokenTTL)
	walletSvc := wallet.NewService(d.Store)
	paymentSvc := payments.NewService(engine, d.Notifier, d.Logger)
	fundingSvc, err := funding.NewService(engine)
	if err != nil {
		return err
	}

	identityHandler := identity.NewHandler(identitySvc)
	authHandler := auth.NewHandler(identitySvc, tokenSvc)
	walletHandler := wallet.NewHandler(walletSvc)
	fundingHandler := funding.NewHandler(fundingSvc)
	paymentHandler := payments.NewHandler(paymentSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": middleware.RequestIDFrom(c),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterIdentityRoutes(api, identityHandler)
	RegisterAuthRoutes(api, authHandler, middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRateLimit))

	// Protected routes carry the guard themselves so unknown paths under
	// /api/v1 still answer 404.
	guard := []fiber.Handler{middleware.JWTAuth(tokenSvc)}
	if d.Cache != nil {
		guard = append(guard, middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	RegisterWalletRoutes(api, walletHandler, guard...)
	RegisterFundingRoutes(api, fundingHandler, guard...)
	RegisterPaymentRoutes(api, paymentHandler, guard...)

	return nil
}

// chain returns mw followed by h without sharing mw's backing array.
func chain(mw []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, h)
}
