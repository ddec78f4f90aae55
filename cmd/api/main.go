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
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"pdfdocx/docs"
	"pdfdocx/internal/config"
	"pdfdocx/internal/database"
	"pdfdocx/internal/database/migration"
	handlers "pdfdocx/internal/http/handler"
	"pdfdocx/internal/http/middleware"
	"pdfdocx/internal/logging"
	"pdfdocx/internal/metrics"
	"pdfdocx/internal/otel"
	"pdfdocx/internal/pdfkit"
	"pdfdocx/internal/repository/postgres"
	"pdfdocx/internal/service"
	"pdfdocx/internal/storage"
)

// @title PDF to DOCX API
// @version 1.0
// @description Converts uploaded PDF documents to DOCX, preserving editable text or page layout.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	log := logging.New(os.Stdout, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "tracing_init_failed", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	convMetrics, err := metrics.NewConversion(reg)
	if err != nil {
		fatal(log, "metrics_init_failed", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(log, "metrics_init_failed", err)
	}

	opts := service.Options{
		Metrics:   convMetrics,
		Logger:    log,
		Timeout:   cfg.Convert.Timeout(),
		URLExpiry: cfg.MinIO.URLExpiry(),
	}

	// Conversion history is optional; without it the service is stateless.
	var db *sql.DB
	if cfg.Database.Enabled {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			fatal(log, "database_connect_failed", err)
		}
		defer db.Close()
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			fatal(log, "database_migration_failed", err)
		}
		opts.Repo = postgres.NewConversionPostgres(db)
	}

	if cfg.MinIO.Enabled {
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			fatal(log, "storage_init_failed", err)
		}
		opts.Store = objStore
	}

	convSvc := service.NewConversionService(pdfkit.NewDispatcher(cfg.Convert.RenderDPI), pdfkit.NewInspector(), opts)

	app := fiber.New(fiber.Config{
		AppName:               "pdfdocx",
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.Convert.MaxUploadMB * 1024 * 1024,
		ReadTimeout:           time.Minute,
		WriteTimeout:          cfg.Convert.Timeout() + time.Minute,
		DisableStartupMessage: true,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(httpMetrics.Handler())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))

	handlers.RegisterRoutes(app, db, convSvc, reg)

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

	addr := cfg.AppHost + ":" + cfg.Port
	go func() {
		log.Info("server_started",
			slog.String("addr", addr),
			slog.Bool("history_enabled", opts.Repo != nil),
			slog.Bool("archive_enabled", opts.Store != nil),
		)
		if err := app.Listen(addr); err != nil {
			fatal(log, "server_failed", err)
		}
	}()

	<-ctx.Done()
	log.Info("server_stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("server_shutdown_failed", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing_shutdown_failed", slog.String("error", err.Error()))
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}
