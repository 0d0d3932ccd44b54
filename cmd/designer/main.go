package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cv-designer/internal/common/config"
	"cv-designer/internal/common/health"
	"cv-designer/internal/common/middleware"
	"cv-designer/internal/designer/handlers"
	"cv-designer/internal/designer/service"
	"cv-designer/internal/storage"
	"cv-designer/internal/storage/cache"
	"cv-designer/internal/storage/filestore"
	"cv-designer/internal/storage/repository"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
)

// ============================================================
// Designer Service
// ============================================================

func main() {
	if err := run(); err != nil {
		log.Fatalf("Designer Service: %v", err)
	}
}

// run держит отложенное закрытие хранилища в своей области, чтобы оно
// выполнялось и при ошибке запуска.
func run() error {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := service.NewSessions(store, service.Options{
		HistoryLimit: cfg.HistoryLimit,
		PageWidth:    cfg.PageWidth,
		PageHeight:   cfg.PageHeight,
	})
	go evictIdle(ctx, sessions, cfg.SessionIdle())

	exports := filestore.New(cfg.FileStoreRoot)
	designerHandler := handlers.NewDesignerHandler(sessions, cfg.ExporterURL, cfg.ExportTimeoutDuration(), exports)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Designer Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("designer"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	health.Register(app, health.Check{Name: "store", Fn: sessions.Ping})

	// ============================================================
	// Designer Routes
	// ============================================================

	designerHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Designer Service on %s (env: %s, store: %s)", addr, cfg.Environment, cfg.StoreDriver)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down Designer Service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("[DESIGNER] shutdown: %v", err)
	}
	if n := sessions.Evict(shutdownCtx, 0); n > 0 {
		log.Printf("[DESIGNER] closed %d sessions on shutdown", n)
	}
	return nil
}

// openStore собирает хранилище по STORE_DRIVER. Если задан REDIS_ADDR,
// sqlite и file оборачиваются кэшем Redis.
func openStore(cfg *config.Config) (storage.Store, func(), error) {
	var (
		store   storage.Store
		closers []func() error
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Printf("[STORE] close: %v", err)
			}
		}
	}

	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := repository.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, db.Close)

		repo := repository.New(db)
		if err := repo.Init(context.Background()); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("init db: %w", err)
		}
		store = repo

	case config.StoreFile:
		store = filestore.New(cfg.FileStoreRoot)

	case config.StoreRedis:
	case config.StoreNone:
		return nil, closeAll, nil
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		closers = append(closers, client.Close)
		store = cache.New(client, store, cfg.RedisTTL())
		log.Printf("[STORE] redis at %s (ttl %s)", cfg.RedisAddr, cfg.RedisTTL())
	}

	return store, closeAll, nil
}

func evictIdle(ctx context.Context, sessions *service.Sessions, idle time.Duration) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(idle / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Evict(ctx, idle); n > 0 {
				log.Printf("[DESIGNER] evicted %d idle sessions", n)
			}
		}
	}
}
