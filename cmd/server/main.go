package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"github.com/campus-services/lostfound-backend/internal/config"
	"github.com/campus-services/lostfound-backend/internal/database"
	"github.com/campus-services/lostfound-backend/internal/dto"
	"github.com/campus-services/lostfound-backend/internal/handlers"
	"github.com/campus-services/lostfound-backend/internal/logging"
	"github.com/campus-services/lostfound-backend/internal/middleware"
	"github.com/campus-services/lostfound-backend/internal/routes"
	"github.com/campus-services/lostfound-backend/internal/services"
	"github.com/campus-services/lostfound-backend/internal/store"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.ProjectID == "" {
		slog.Error("GOOGLE_PROJECT_ID environment variable is required")
		os.Exit(1)
	}
	if cfg.StorageBucket == "" {
		slog.Error("STORAGE_BUCKET environment variable is required")
		os.Exit(1)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		slog.Error("firestore client creation failed", "error", err)
		os.Exit(1)
	}
	defer fsClient.Close()

	gcsClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		slog.Error("storage client creation failed", "error", err)
		os.Exit(1)
	}
	defer gcsClient.Close()

	documents := store.NewFirestore(fsClient)
	blobs := store.NewGCS(gcsClient, cfg.StorageBucket)

	// Optional PostgreSQL log sink (ERROR+ async batch)
	var logDB *gorm.DB
	var pgLogHandler *logging.PGHandler
	cleanupDone := make(chan struct{})
	if cfg.LogSinkEnabled() {
		logDB, err = database.Connect(cfg)
		if err != nil {
			slog.Error("log sink connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(logDB); err != nil {
			slog.Error("log sink migration failed", "error", err)
			os.Exit(1)
		}

		pgLogHandler = logging.NewPGHandler(logDB)
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
			pgLogHandler,
		)).With("service", "lostfound-backend"))

		// Log cleanup (30-day retention)
		logging.StartCleanup(logDB, cleanupDone)
	}

	// Services
	imageResolver := services.NewImageResolver(blobs)
	itemsService := services.NewItemsService(documents, imageResolver)
	reportsService := services.NewReportsService(documents, blobs)

	// Handlers
	healthHandler := handlers.NewHealthHandler(documents)
	itemsHandler := handlers.NewItemsHandler(itemsService)
	reportsHandler := handlers.NewReportsHandler(reportsService)

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
		BodyLimit:    8 * 1024 * 1024,
		UnescapePath: true,
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
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, healthHandler, itemsHandler, reportsHandler)

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
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if logDB != nil {
		if err := database.Close(logDB); err != nil {
			slog.Error("log sink close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Unexpected server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Unexpected server error"
	}

	errCode := dto.CodeInternalError
	switch code {
	case fiber.StatusBadRequest:
		errCode = dto.CodeBadRequest
	case fiber.StatusNotFound:
		errCode = dto.CodeNotFound
	case fiber.StatusForbidden:
		errCode = dto.CodeForbidden
	}

	return c.Status(code).JSON(dto.NewError(errCode, message))
}
