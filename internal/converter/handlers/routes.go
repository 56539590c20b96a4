package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// Register mounts the service routes on app.
func Register(app *fiber.App, conv *ConverterHandler, drawings *DrawingHandler, db Pinger) {
	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", ReadinessProbe(db))

	// ============================================================
	// Converter Routes
	// ============================================================

	app.Post("/render", conv.Render)
	app.Post("/convert", conv.Convert)

	// ============================================================
	// Drawing Routes
	// ============================================================

	app.Post("/drawings", drawings.Create)
	app.Get("/drawings", drawings.List)
	app.Get("/drawings/:id", drawings.Get)
	app.Post("/drawings/:id/export", drawings.Export)
	app.Delete("/drawings/:id", drawings.Delete)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs/openapi.yaml", SwaggerSpec)
	app.Get("/docs", SwaggerUI)
}
