package handlers

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Swagger Handlers
// ============================================================

//go:embed openapi.yaml
var openAPISpec []byte

// SwaggerSpec отдаёт OpenAPI YAML.
func SwaggerSpec(c fiber.Ctx) error {
	c.Type("yaml")
	return c.Send(openAPISpec)
}

var swaggerPage = template.Must(template.New("swagger").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="{{.Assets}}/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="{{.Assets}}/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({url: {{.SpecURL}}, dom_id: '#swagger-ui'});
  };
</script>
</body>
</html>`))

const swaggerAssets = "https://unpkg.com/swagger-ui-dist"

// SwaggerUI рендерит страницу один раз, на старте.
func SwaggerUI(title, specURL string) fiber.Handler {
	var buf bytes.Buffer
	err := swaggerPage.Execute(&buf, struct{ Title, SpecURL, Assets string }{title, specURL, swaggerAssets})
	if err != nil {
		panic(err)
	}
	page := buf.Bytes()

	return func(c fiber.Ctx) error {
		c.Type("html")
		return c.Send(page)
	}
}

// Index: корень /api/v1.
func Index(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "CV Designer API v1",
		"status":  "ok",
		"docs":    "/docs",
	})
}
