package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type openAPIDoc struct {
	OpenAPI string                    `yaml:"openapi"`
	Paths   map[string]map[string]any `yaml:"paths"`
}

func TestOpenAPISpecParses(t *testing.T) {
	var doc openAPIDoc
	require.NoError(t, yaml.Unmarshal(openAPISpec, &doc))

	assert.Equal(t, "3.0.3", doc.OpenAPI)

	expected := map[string][]string{
		"/documents":                          {"get", "post"},
		"/documents/{id}":                     {"get", "delete"},
		"/documents/{id}/elements/{eid}":      {"patch", "delete"},
		"/documents/{id}/elements/{eid}/move": {"post"},
		"/documents/{id}/pages/{index}/svg":   {"get"},
		"/documents/{id}/pages/{index}/png":   {"get"},
		"/render":                             {"post"},
		"/fonts":                              {"get"},
	}
	for path, methods := range expected {
		ops, ok := doc.Paths[path]
		require.True(t, ok, path)
		for _, m := range methods {
			assert.Contains(t, ops, m, "%s %s", m, path)
		}
	}
}

func TestSwaggerRoutes(t *testing.T) {
	app := fiber.New()
	app.Get("/docs", SwaggerUI("Designer <API>", "/docs/openapi.yaml"))
	app.Get("/docs/openapi.yaml", SwaggerSpec)
	app.Get("/api/v1", Index)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil))
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, openAPISpec, data)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.NoError(t, err)
	data, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	page := string(data)
	assert.Contains(t, page, "swagger-ui")
	assert.Contains(t, page, "<title>Designer &lt;API&gt;</title>")
	assert.Contains(t, page, `"/docs/openapi.yaml"`)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
