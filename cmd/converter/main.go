package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"dxf-service/internal/common/config"
	"dxf-service/internal/common/middleware"
	"dxf-service/internal/converter/handlers"
	"dxf-service/internal/converter/mapper"
	"dxf-service/internal/converter/repository"
	"dxf-service/internal/converter/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// DXF Service
// ============================================================

func main() {
	cfg := config.Load()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	defaults := mapper.Defaults{Units: cfg.Units, Version: cfg.Version}
	storage := service.NewFileStorage(cfg.ExportDir)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimit,
		AppName:      "DXF Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Routes
	// ============================================================

	handlers.Register(app,
		handlers.NewConverterHandler(defaults),
		handlers.NewDrawingHandler(repo, storage, defaults),
		repo,
	)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting DXF Service on %s (env: %s, %s, %s)", addr, cfg.Environment, cfg.Version, cfg.Units)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
