package handlers

import (
	"log"
	"net/http"

	"cv-designer/internal/designer/controller"
	"cv-designer/internal/designer/models"
	"cv-designer/internal/designer/templates"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Documents
// ============================================================

type createRequest struct {
	Name     string `json:"name"`
	Template string `json:"template"`
}

// CreateDocument открывает новый документ, при необходимости сразу из шаблона.
func (h *DesignerHandler) CreateDocument(c fiber.Ctx) error {
	var req createRequest
	if err := decode(c, &req, true); err != nil {
		return fail(c, err)
	}

	var elements []models.Element
	if req.Template != "" {
		var ok bool
		if elements, ok = templates.Get(req.Template); !ok {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unknown template"})
		}
	}

	s := h.sessions.Create(req.Name)
	log.Printf("[DESIGNER] created document %s", s.ID())

	var resp stateResponse
	_ = s.Do(func(ctrl *controller.Controller) error {
		changed := false
		if len(elements) > 0 {
			changed = ctrl.LoadTemplate(elements, true) > 0
		}
		resp = snapshot(ctrl, changed)
		return nil
	})
	return c.Status(http.StatusCreated).JSON(resp)
}

func (h *DesignerHandler) ListDocuments(c fiber.Ctx) error {
	list, err := h.sessions.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"documents": list})
}

// GetDocument отдаёт живое состояние, включая черновые изменения.
func (h *DesignerHandler) GetDocument(c fiber.Ctx) error {
	return h.mutate(c, func(*controller.Controller) (bool, error) {
		return false, nil
	})
}

func (h *DesignerHandler) SaveDocument(c fiber.Ctx) error {
	doc, err := h.sessions.Save(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	log.Printf("[DESIGNER] saved document %s", doc.ID)
	return c.JSON(fiber.Map{"id": doc.ID, "updatedAt": doc.UpdatedAt})
}

func (h *DesignerHandler) LoadDocument(c fiber.Ctx) error {
	s, err := h.sessions.Load(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	var resp stateResponse
	_ = s.Do(func(ctrl *controller.Controller) error {
		resp = snapshot(ctrl, true)
		return nil
	})
	return c.JSON(resp)
}

func (h *DesignerHandler) DeleteDocument(c fiber.Ctx) error {
	if err := h.sessions.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// View & templates
// ============================================================

type viewRequest struct {
	Zoom             *float64        `json:"zoom"`
	ShowGrid         *bool           `json:"showGrid"`
	GridSize         *float64        `json:"gridSize"`
	ShowMarginGuides *bool           `json:"showMarginGuides"`
	SnapToGuides     *bool           `json:"snapToGuides"`
	PageMargins      *models.Margins `json:"pageMargins"`
	Name             *string         `json:"name"`
}

// UpdateView меняет настройки холста. Поля и имя документа пишутся в историю.
func (h *DesignerHandler) UpdateView(c fiber.Ctx) error {
	var req viewRequest
	if err := decode(c, &req, false); err != nil {
		return fail(c, err)
	}

	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		if req.Zoom != nil {
			ctrl.SetZoom(*req.Zoom)
		}
		if req.ShowGrid != nil {
			ctrl.SetShowGrid(*req.ShowGrid)
		}
		if req.GridSize != nil {
			ctrl.SetGridSize(*req.GridSize)
		}
		if req.ShowMarginGuides != nil {
			ctrl.SetShowMarginGuides(*req.ShowMarginGuides)
		}
		if req.SnapToGuides != nil {
			ctrl.SetSnapToGuides(*req.SnapToGuides)
		}
		changed := false
		if req.PageMargins != nil {
			changed = ctrl.SetPageMargins(*req.PageMargins) || changed
		}
		if req.Name != nil {
			changed = ctrl.Rename(*req.Name) || changed
		}
		return changed, nil
	})
}

func (h *DesignerHandler) ListTemplates(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": templates.Names()})
}

// LoadTemplate добавляет элементы шаблона на активную страницу (?replace=1 очищает её).
func (h *DesignerHandler) LoadTemplate(c fiber.Ctx) error {
	elements, ok := templates.Get(c.Params("name"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "template not found"})
	}
	replace := flag(c, "replace")

	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.LoadTemplate(elements, replace) > 0, nil
	})
}
