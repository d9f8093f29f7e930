package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/wallet-notify/wallet_notify/internal/config"
	"github.com/wallet-notify/wallet_notify/internal/fee"
	"github.com/wallet-notify/wallet_notify/internal/ledger"
	"github.com/wallet-notify/wallet_notify/internal/middleware"
	"github.com/wallet-notify/wallet_notify/internal/notify"
	"github.com/wallet-notify/wallet_notify/internal/transfer"
	"github.com/wallet-notify/wallet_notify/internal/wallet"
	"github.com/wallet-notify/wallet_notify/internal/ws"
)

// Deps aggregates shared dependencies required to wire routes. Cache may be
// nil; redis-backed middleware is skipped without it.
type Deps struct {
	Cfg    config.Config
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Core: one ledger store, one dispatcher, one processor.
	store := ledger.NewStore()
	dispatcher := notify.NewDispatcher(store, d.Cfg.SeedBalance, d.Logger)
	processor := transfer.NewProcessor(store, fee.NewPolicy(d.Cfg.FeeBps), dispatcher, d.Logger)

	walletHandler := wallet.NewHandler(dispatcher, store)
	transferHandler := transfer.NewHandler(processor)
	wsHandler := ws.NewHandler(dispatcher, processor, d.Cfg.SendBuffer, d.Logger)

	RegisterHealthRoutes(app, d)
	RegisterWebsocketRoute(app, wsHandler)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	if d.Cache != nil {
		api.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterWalletRoutes(api, walletHandler)
	RegisterTransferRoutes(api, transferHandler, middleware.TransferRateLimit(d.Cache, d.Cfg.TransferRatePerMin))

	return nil
}
