package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/kasku-app/kasku/internal/activity"
	"github.com/kasku-app/kasku/internal/auth"
	"github.com/kasku-app/kasku/internal/config"
	"github.com/kasku-app/kasku/internal/identity"
	"github.com/kasku-app/kasku/internal/middleware"
	"github.com/kasku-app/kasku/internal/notification"
	"github.com/kasku-app/kasku/internal/payment"
	"github.com/kasku-app/kasku/internal/splitbill"
	"github.com/kasku-app/kasku/internal/topup"
	"github.com/kasku-app/kasku/internal/transfer"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	// Repositories, Postgres when available and in-memory otherwise.
	var identityRepo identity.Repository
	var transferRepo transfer.Repository
	var splitRepo splitbill.Repository
	var topupRepo topup.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		transferRepo = transfer.NewPostgresRepository(d.DB)
		splitRepo = splitbill.NewPostgresRepository(d.DB)
		topupRepo = topup.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		transferRepo = transfer.NewMemoryRepository()
		splitRepo = splitbill.NewMemoryRepository()
		topupRepo = topup.NewMemoryRepository()
	}

	notifier := notification.NewLoggerNotifier(d.Logger)

	var gateway interface {
		transfer.Gateway
		topup.Gateway
	}
	if d.Cfg.SnapServerKey != "" {
		gateway = payment.NewSnapClient(d.Cfg.SnapBaseURL, d.Cfg.SnapServerKey)
	} else {
		gateway = payment.StaticGateway{}
	}

	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg, identityRepo)
	transferSvc := transfer.NewService(transferRepo, identityRepo, gateway)
	splitSvc := splitbill.NewService(splitRepo)
	topupSvc := topup.NewService(topupRepo, identityRepo, gateway)
	feed := activity.NewFeed(transferRepo, splitRepo, topupRepo, d.Logger)
	reconciler := payment.NewReconciler(transferRepo, topupRepo, identityRepo, notifier, d.Cfg.SnapServerKey, d.Logger)

	authHandler := auth.NewHandler(identitySvc, authSvc)
	transferHandler := transfer.NewHandler(transferSvc)
	splitHandler := splitbill.NewHandler(splitSvc)
	topupHandler := topup.NewHandler(topupSvc)
	activityHandler := activity.NewHandler(feed)
	paymentHandler := payment.NewHandler(reconciler)

	// Health
	RegisterHealthRoutes(app, d)

	// Gateway callbacks carry no Idempotency-Key header and no bearer token;
	// the route is registered before both middlewares. Replayed notifications
	// are absorbed by the settlement status transition.
	RegisterPaymentRoutes(app, paymentHandler)

	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	jwtmw := middleware.JWTAuth(d.Cfg, identityRepo)
	protected := api.Group("", jwtmw)
	RegisterUserRoutes(protected, identitySvc)
	RegisterTransferRoutes(protected, transferHandler)
	RegisterSplitBillRoutes(protected, splitHandler)
	RegisterTopUpRoutes(protected, topupHandler)
	RegisterActivityRoutes(protected, activityHandler)
	protected.Post("/auth/logout", authHandler.Logout)

	return nil
}
