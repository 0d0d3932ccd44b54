package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"cv-designer/internal/common/config"
	"cv-designer/internal/common/health"
	"cv-designer/internal/common/middleware"
	"cv-designer/internal/designer/fonts"
	"cv-designer/internal/export/handlers"
	"cv-designer/internal/export/raster"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Export Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3002"
	}

	renderHandler := handlers.NewRenderHandler(raster.NewRenderer(fonts.Default))

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    16 * 1024 * 1024,
		AppName:      "Export Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("exporter"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	health.Register(app)

	// ============================================================
	// Export Routes
	// ============================================================

	app.Post("/render", renderHandler.Render)
	app.Get("/fonts", renderHandler.Fonts)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Export Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
