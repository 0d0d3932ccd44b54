package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"cv-designer/internal/designer/controller"
	"cv-designer/internal/designer/models"
	"cv-designer/internal/designer/projector"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Pages
// ============================================================

func (h *DesignerHandler) AddPage(c fiber.Ctx) error {
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		ctrl.AddPage()
		return true, nil
	})
}

func (h *DesignerHandler) DeletePage(c fiber.Ctx) error {
	index, err := pageIndex(c)
	if err != nil {
		return fail(c, err)
	}
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.DeletePage(index), nil
	})
}

func (h *DesignerHandler) DuplicatePage(c fiber.Ctx) error {
	index, err := pageIndex(c)
	if err != nil {
		return fail(c, err)
	}
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		_, ok := ctrl.DuplicatePage(index)
		return ok, nil
	})
}

func (h *DesignerHandler) GoToPage(c fiber.Ctx) error {
	index, err := pageIndex(c)
	if err != nil {
		return fail(c, err)
	}
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.GoToPage(index), nil
	})
}

type movePageRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (h *DesignerHandler) MovePage(c fiber.Ctx) error {
	var req movePageRequest
	if err := decode(c, &req, false); err != nil {
		return fail(c, err)
	}
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.MovePage(req.From, req.To), nil
	})
}

func (h *DesignerHandler) ClearPage(c fiber.Ctx) error {
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.ClearPage(), nil
	})
}

// ============================================================
// Rendering
// ============================================================

type pageSnapshot struct {
	ID       string
	Elements []models.Element
	Width    float64
	Height   float64
}

// page берёт копию страницы под мьютексом сессии; рендер идёт уже без него.
func (h *DesignerHandler) page(c fiber.Ctx) (pageSnapshot, error) {
	index, err := pageIndex(c)
	if err != nil {
		return pageSnapshot{}, err
	}
	s, err := h.sessions.Open(c.Context(), c.Params("id"))
	if err != nil {
		return pageSnapshot{}, err
	}

	var out pageSnapshot
	err = s.Do(func(ctrl *controller.Controller) error {
		doc := ctrl.Document()
		if index < 0 || index >= len(doc.Pages) {
			return fiber.NewError(http.StatusNotFound, "page not found")
		}
		out = pageSnapshot{
			ID:       doc.ID,
			Elements: doc.Pages[index].Elements,
			Width:    doc.PageWidth,
			Height:   doc.PageHeight,
		}
		return nil
	})
	return out, err
}

// PageSVG отдаёт детерминированный SVG страницы без состояния холста.
func (h *DesignerHandler) PageSVG(c fiber.Ctx) error {
	p, err := h.page(c)
	if err != nil {
		return fail(c, err)
	}

	svg, err := h.renderer.Render(projector.ProjectPage(p.Elements), p.Width, p.Height)
	if err != nil {
		return fail(c, err)
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

type renderRequest struct {
	Elements []models.Element `json:"elements"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	DPI      float64          `json:"dpi,omitempty"`
	Format   string           `json:"format"`
}

// PagePNG растеризует страницу через сервис экспорта (?dpi=).
func (h *DesignerHandler) PagePNG(c fiber.Ctx) error {
	if h.exporterURL == "" {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "exporter url is empty"})
	}
	p, err := h.page(c)
	if err != nil {
		return fail(c, err)
	}

	dpi, _ := strconv.ParseFloat(c.Query("dpi", "96"), 64)
	data, err := h.export(c.Context(), renderRequest{
		Elements: p.Elements,
		Width:    p.Width,
		Height:   p.Height,
		DPI:      dpi,
		Format:   "png",
	})
	if err != nil {
		log.Printf("[DESIGNER] export error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(data)
}

// Snapshot сохраняет SVG страницы в каталог экспортов документа.
func (h *DesignerHandler) Snapshot(c fiber.Ctx) error {
	if h.exports == nil {
		return c.Status(http.StatusNotImplemented).JSON(fiber.Map{"error": "exports are not configured"})
	}
	p, err := h.page(c)
	if err != nil {
		return fail(c, err)
	}

	svg, err := h.renderer.Render(projector.ProjectPage(p.Elements), p.Width, p.Height)
	if err != nil {
		return fail(c, err)
	}

	name := fmt.Sprintf("page-%s.svg", c.Params("index"))
	path, err := h.exports.SaveExport(p.ID, name, []byte(svg))
	if err != nil {
		return fail(c, err)
	}
	log.Printf("[DESIGNER] snapshot %s -> %s", p.ID, path)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"file": name})
}

// export отправляет страницу в Exporter /render и возвращает тело ответа.
func (h *DesignerHandler) export(ctx context.Context, payload renderRequest) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.exporterURL+"/render", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("exporter status %d", resp.StatusCode)
	}
	return data, nil
}
