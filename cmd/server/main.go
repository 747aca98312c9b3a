package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/vitalog-app/vitalog-backend/internal/account"
	"github.com/vitalog-app/vitalog-backend/internal/ai"
	"github.com/vitalog-app/vitalog-backend/internal/config"
	"github.com/vitalog-app/vitalog-backend/internal/database"
	"github.com/vitalog-app/vitalog-backend/internal/handlers"
	"github.com/vitalog-app/vitalog-backend/internal/logging"
	"github.com/vitalog-app/vitalog-backend/internal/middleware"
	"github.com/vitalog-app/vitalog-backend/internal/models"
	"github.com/vitalog-app/vitalog-backend/internal/modules"
	"github.com/vitalog-app/vitalog-backend/internal/modules/checkins"
	"github.com/vitalog-app/vitalog-backend/internal/modules/coach"
	"github.com/vitalog-app/vitalog-backend/internal/modules/medications"
	"github.com/vitalog-app/vitalog-backend/internal/modules/nutrition"
	"github.com/vitalog-app/vitalog-backend/internal/modules/vitals"
	"github.com/vitalog-app/vitalog-backend/internal/routes"
	"github.com/vitalog-app/vitalog-backend/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Shared services
	aiClient := ai.NewClient(cfg.AITimeout)
	subscriptionService := services.NewSubscriptionService(database.DB)

	// Feature modules
	featureModules := []modules.Module{
		checkins.New(),
		medications.New(),
		vitals.New(),
		nutrition.New(aiClient, subscriptionService),
		coach.New(aiClient, subscriptionService),
	}

	// Migrate module models
	for _, m := range featureModules {
		if modelList := m.Models(); len(modelList) > 0 {
			if err := database.MigrateModels(modelList); err != nil {
				slog.Error("module migration failed", "module", m.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("module migrated", "module", m.ID(), "models", len(modelList))
		}
	}

	// Account deletion sweeps module data first, then sessions and
	// subscriptions, before the user row itself goes.
	deletionSteps := make([]account.Step, 0, 16)
	for _, m := range featureModules {
		deletionSteps = append(deletionSteps, m.DeletionSteps()...)
	}
	deletionSteps = append(deletionSteps,
		account.Step{Label: "sessions", Delete: account.DeleteOwned(&models.RefreshToken{})},
		account.Step{Label: "subscriptions", Delete: account.DeleteOwned(&models.Subscription{})},
	)
	orchestrator := account.NewOrchestrator(database.DB, deletionSteps)

	authService := services.NewAuthService(database.DB, cfg, orchestrator)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	webhookHandler := handlers.NewWebhookHandler(subscriptionService, cfg)
	adminHandler := handlers.NewAdminHandler(database.DB)
	legalHandler := handlers.NewLegalHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, authHandler, healthHandler, webhookHandler, adminHandler, legalHandler, featureModules)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
