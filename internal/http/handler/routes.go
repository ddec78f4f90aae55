package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"pdfdocx/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// db may be nil when history is disabled; /metrics is skipped when gatherer is nil.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.ConversionService, gatherer prometheus.Gatherer) {
	app.Get("/", Index())

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	if gatherer != nil {
		app.Get("/metrics", Metrics(gatherer))
	}

	api := app.Group("/api")
	api.Get("/modes", ListModes())
	api.Post("/convert", ConvertDocument(svc))
	api.Post("/inspect", InspectDocument(svc))

	api.Get("/conversions", ListConversions(svc))
	api.Get("/conversions/:id", GetConversion(svc))
	api.Get("/conversions/:id/download", DownloadConversion(svc))
}
