package health

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// Check: одна проверка готовности (хранилище, соседний сервис).
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

// checkTimeout ограничивает одну проверку готовности.
const checkTimeout = 2 * time.Second

var client = &http.Client{Timeout: checkTimeout}

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// Readiness выполняет проверки по очереди; при первой ошибке отвечает 503.
func Readiness(checks ...Check) fiber.Handler {
	return func(c fiber.Ctx) error {
		for _, check := range checks {
			ctx, cancel := context.WithTimeout(c.Context(), checkTimeout)
			err := check.Fn(ctx)
			cancel()
			if err != nil {
				log.Printf("[HEALTH] %s not ready: %v", check.Name, err)
				return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "not ready",
					"check":  check.Name,
					"error":  err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}

// StartupProbe проверяет, что приложение успешно запустилось
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}

// Upstream проверяет /health/live соседнего сервиса.
func Upstream(name, baseURL string) Check {
	return Check{
		Name: name,
		Fn: func(ctx context.Context) error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health/live", nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d", resp.StatusCode)
			}
			return nil
		},
	}
}

// Register вешает стандартные маршруты /health/*.
func Register(app fiber.Router, checks ...Check) {
	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", Readiness(checks...))
	app.Get("/health/startup", StartupProbe)
}
