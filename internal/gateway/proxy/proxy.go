package proxy

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Proxy Handler
// ============================================================

// forwardHeaders: заголовки запроса, которые уходят upstream.
var forwardHeaders = []string{"Content-Type", "Accept", "Authorization"}

// skipHeaders не копируются из ответа upstream: их выставляет сам fiber.
var skipHeaders = map[string]bool{
	"Content-Length":    true,
	"Connection":        true,
	"Transfer-Encoding": true,
}

var client = &http.Client{Timeout: 60 * time.Second}

// ProxyTo проксирует запрос на фиксированный URL.
func ProxyTo(targetURL string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return forwardRequest(c, targetURL)
	}
}

// Mount проксирует запрос на baseURL, отрезая prefix от пути и сохраняя query.
// /api/v1/documents/42?x=1 при prefix=/api/v1 уходит на baseURL/documents/42?x=1.
func Mount(prefix, baseURL string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return forwardRequest(c, Target(baseURL, prefix, c.Path(), string(c.Request().URI().QueryString())))
	}
}

// Forward проксирует запрос по переданному URL (для динамических путей).
func Forward(c fiber.Ctx, targetURL string) error {
	return forwardRequest(c, targetURL)
}

// Target собирает адрес upstream из пути входящего запроса.
func Target(baseURL, prefix, path, query string) string {
	path = strings.TrimPrefix(path, prefix)
	if path == "" {
		path = "/"
	}
	target := strings.TrimSuffix(baseURL, "/") + path
	if query != "" {
		target += "?" + query
	}
	return target
}

func forwardRequest(c fiber.Ctx, targetURL string) error {
	log.Printf("[PROXY] %s %s -> %s", c.Method(), c.Path(), targetURL)

	req, err := http.NewRequestWithContext(c.Context(), c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		log.Printf("[PROXY] build request error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}
	for _, key := range forwardHeaders {
		if v := c.Get(key); v != "" {
			req.Header.Set(key, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[PROXY] Error: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return copyResponse(c, resp)
}

func copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[PROXY] Read response error: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if len(values) > 0 && !skipHeaders[key] {
			c.Set(key, values[0])
		}
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}
