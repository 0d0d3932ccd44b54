package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"cv-designer/internal/designer/models"
	"cv-designer/internal/designer/projector"
	"cv-designer/internal/export/raster"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Render Handler
// ============================================================

type RenderRequest struct {
	Elements   []models.Element `json:"elements"`
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	DPI        float64          `json:"dpi"`
	Format     string           `json:"format"`
	Background string           `json:"background"`
}

type RenderHandler struct {
	svg    *projector.Renderer
	raster *raster.Renderer
}

func NewRenderHandler(r *raster.Renderer) *RenderHandler {
	if r == nil {
		r = raster.NewRenderer(nil)
	}
	return &RenderHandler{svg: projector.NewRenderer(), raster: r}
}

// Render рисует страницу в SVG или PNG теми же проекциями, что и редактор.
func (h *RenderHandler) Render(c fiber.Ctx) error {
	log.Printf("[EXPORT] Received request, Content-Length: %d", len(c.Body()))

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	var req RenderRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Printf("[EXPORT] Decode error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if req.Width == 0 && req.Height == 0 {
		req.Width, req.Height = models.DefaultPageWidth, models.DefaultPageHeight
	}
	if req.Width <= 0 || req.Height <= 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "width and height must be positive"})
	}

	for i := range req.Elements {
		req.Elements[i].Normalize(false)
	}
	page := projector.ProjectPage(req.Elements)

	switch req.Format {
	case "", "svg":
		renderer := h.svg
		if req.Background != "" {
			renderer = &projector.Renderer{Background: req.Background}
		}
		svg, err := renderer.Render(page, req.Width, req.Height)
		if err != nil {
			log.Printf("[EXPORT] Render error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set("Content-Type", "image/svg+xml")
		return c.SendString(svg)

	case "png":
		img, err := h.raster.Render(page, req.Width, req.Height, raster.Options{DPI: req.DPI, Background: req.Background})
		if err != nil {
			log.Printf("[EXPORT] Raster error: %v", err)
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		var buf bytes.Buffer
		if err := raster.EncodePNG(&buf, img); err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("[EXPORT] PNG %dx%d, %d bytes", img.Bounds().Dx(), img.Bounds().Dy(), buf.Len())
		c.Set("Content-Type", "image/png")
		return c.Send(buf.Bytes())
	}

	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "format must be svg or png"})
}

// Fonts перечисляет семейства, загруженные за время работы процесса.
func (h *RenderHandler) Fonts(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"families": h.raster.Families()})
}
