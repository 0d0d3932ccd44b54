package main

import (
	"fmt"
	"log"
	"time"

	"cv-designer/internal/common/config"
	"cv-designer/internal/common/health"
	"cv-designer/internal/common/middleware"
	"cv-designer/internal/gateway/handlers"
	"cv-designer/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

const apiPrefix = "/api/v1"

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("gateway"))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	health.Register(app,
		health.Upstream("designer", cfg.DesignerURL),
		health.Upstream("exporter", cfg.ExporterURL),
	)

	app.Get("/docs", handlers.SwaggerUI("CV Designer API", "/docs/openapi.yaml"))
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group(apiPrefix)
	api.Get("/", handlers.Index)

	// Designer Service
	toDesigner := proxy.Mount(apiPrefix, cfg.DesignerURL)
	api.Get("/templates", toDesigner)
	api.All("/documents", toDesigner)
	api.All("/documents/*", toDesigner)

	// Export Service
	api.Post("/render", proxy.ProxyTo(cfg.ExporterURL+"/render"))
	api.Get("/fonts", proxy.ProxyTo(cfg.ExporterURL+"/fonts"))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying designer to %s, export to %s", cfg.DesignerURL, cfg.ExporterURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
