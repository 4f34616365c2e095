package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cdnupload/docs"
	"cdnupload/internal/auth"
	"cdnupload/internal/config"
	"cdnupload/internal/database"
	"cdnupload/internal/database/migration"
	handlers "cdnupload/internal/http/handler"
	"cdnupload/internal/http/middleware"
	"cdnupload/internal/logger"
	"cdnupload/internal/repository"
	"cdnupload/internal/repository/postgres"
	"cdnupload/internal/service"
	"cdnupload/internal/storage"
	"cdnupload/internal/telemetry"
)

// @title CDN Upload API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logger.New(logger.Options{
		Development: cfg.IsDevelopment(),
		SentryDSN:   cfg.SentryDSN,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Tracing, log)
	if err != nil {
		fatal(log, "failed to initialize tracing", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error("tracing shutdown failed", "error", err)
		}
	}()

	// Metadata persistence is optional; without it no database is opened.
	var (
		db   *sql.DB
		repo repository.FileRecordRepository
	)
	if cfg.MetadataEnabled {
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			fatal(log, "failed to connect to database", err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log); err != nil {
			fatal(log, "failed to migrate database", err)
		}
		repo = postgres.NewFileRecordPostgres(db)
	}

	objStore, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		fatal(log, "failed to initialize object storage", err)
	}

	verifier, err := auth.New(cfg.Auth, auth.NewHTTPClient())
	if err != nil {
		fatal(log, "failed to initialize identity verifier", err)
	}

	uploadSvc := service.NewUploadService(objStore, repo, cfg.PublicBaseURL, log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(log, "failed to register metrics", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitMB << 20,
	})

	// Register global middleware
	app.Use(recover.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())
	app.Use(middleware.CORS())

	handlers.RegisterRoutes(app, verifier, uploadSvc)
	handlers.RegisterHealth(app, db)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	// Must come last: it answers every GET no route above claimed.
	handlers.RegisterStatic(app, cfg.StaticDir)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server starting", "addr", addr, "storage_driver", cfg.Storage.Driver, "auth_provider", cfg.Auth.Provider, "metadata_enabled", cfg.MetadataEnabled)
	if err := app.Listen(addr); err != nil {
		fatal(log, "failed to start server", err)
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	logger.Flush(2 * time.Second)
	os.Exit(1)
}
