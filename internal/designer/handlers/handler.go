package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"cv-designer/internal/designer/controller"
	"cv-designer/internal/designer/geometry"
	"cv-designer/internal/designer/models"
	"cv-designer/internal/designer/projector"
	"cv-designer/internal/designer/service"
	"cv-designer/internal/storage"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Designer Handler
// ============================================================

// Exports сохраняет готовые файлы экспорта рядом с документом.
type Exports interface {
	SaveExport(id, filename string, data []byte) (string, error)
}

type DesignerHandler struct {
	sessions    *service.Sessions
	renderer    *projector.Renderer
	exporterURL string
	exports     Exports
	client      *http.Client
}

// DefaultExportTimeout ограничивает вызов сервиса экспорта, если таймаут не задан.
const DefaultExportTimeout = 30 * time.Second

func NewDesignerHandler(sessions *service.Sessions, exporterURL string, exportTimeout time.Duration, exports Exports) *DesignerHandler {
	if exportTimeout <= 0 {
		exportTimeout = DefaultExportTimeout
	}
	return &DesignerHandler{
		sessions:    sessions,
		renderer:    projector.NewRenderer(),
		exporterURL: exporterURL,
		exports:     exports,
		client:      &http.Client{Timeout: exportTimeout},
	}
}

// Register вешает маршруты API редактора на router.
func (h *DesignerHandler) Register(r fiber.Router) {
	r.Get("/templates", h.ListTemplates)

	r.Post("/documents", h.CreateDocument)
	r.Get("/documents", h.ListDocuments)
	r.Get("/documents/:id", h.GetDocument)
	r.Delete("/documents/:id", h.DeleteDocument)
	r.Post("/documents/:id/save", h.SaveDocument)
	r.Post("/documents/:id/load", h.LoadDocument)
	r.Patch("/documents/:id/view", h.UpdateView)
	r.Post("/documents/:id/template/:name", h.LoadTemplate)

	r.Post("/documents/:id/elements", h.AddElement)
	r.Patch("/documents/:id/elements/:eid", h.UpdateElement)
	r.Delete("/documents/:id/elements/:eid", h.DeleteElement)
	r.Post("/documents/:id/elements/:eid/duplicate", h.DuplicateElement)
	r.Post("/documents/:id/elements/:eid/move", h.MoveElement)
	r.Post("/documents/:id/elements/:eid/resize", h.ResizeElement)
	r.Post("/documents/:id/elements/:eid/layer", h.Layer)
	r.Post("/documents/:id/commit", h.Commit)

	r.Post("/documents/:id/selection", h.Select)
	r.Delete("/documents/:id/selection", h.DeleteSelected)
	r.Post("/documents/:id/selection/duplicate", h.DuplicateSelected)
	r.Post("/documents/:id/selection/nudge", h.Nudge)
	r.Post("/documents/:id/align/:mode", h.Align)
	r.Post("/documents/:id/distribute/:axis", h.Distribute)
	r.Post("/documents/:id/undo", h.Undo)
	r.Post("/documents/:id/redo", h.Redo)

	r.Post("/documents/:id/pages", h.AddPage)
	r.Post("/documents/:id/pages/move", h.MovePage)
	r.Post("/documents/:id/pages/clear", h.ClearPage)
	r.Delete("/documents/:id/pages/:index", h.DeletePage)
	r.Post("/documents/:id/pages/:index/duplicate", h.DuplicatePage)
	r.Post("/documents/:id/pages/:index/goto", h.GoToPage)
	r.Get("/documents/:id/pages/:index/svg", h.PageSVG)
	r.Get("/documents/:id/pages/:index/png", h.PagePNG)
	r.Post("/documents/:id/pages/:index/snapshot", h.Snapshot)
}

// ============================================================
// Responses
// ============================================================

type stateResponse struct {
	Changed   bool                 `json:"changed"`
	ID        string               `json:"id,omitempty"`
	IDs       []string             `json:"ids,omitempty"`
	Snap      *geometry.SnapResult `json:"snap,omitempty"`
	Document  *models.Document     `json:"document"`
	Selection []string             `json:"selection"`
	CanUndo   bool                 `json:"canUndo"`
	CanRedo   bool                 `json:"canRedo"`
	HasDraft  bool                 `json:"hasDraft"`
}

func snapshot(c *controller.Controller, changed bool) stateResponse {
	resp := stateResponse{}
	resp.fill(c, changed)
	return resp
}

func (r *stateResponse) fill(c *controller.Controller, changed bool) {
	r.Changed = changed
	r.Document = c.Document()
	r.Selection = c.SelectedIDs()
	r.CanUndo = c.CanUndo()
	r.CanRedo = c.CanRedo()
	r.HasDraft = c.HasDraft()
}

// mutate выполняет op над сессией документа и отвечает её состоянием.
func (h *DesignerHandler) mutate(c fiber.Ctx, op func(ctrl *controller.Controller) (bool, error)) error {
	return h.mutateWith(c, func(ctrl *controller.Controller, _ *stateResponse) (bool, error) {
		return op(ctrl)
	})
}

// mutateWith: то же, но op может дописать в ответ id, ids или snap.
func (h *DesignerHandler) mutateWith(c fiber.Ctx, op func(ctrl *controller.Controller, resp *stateResponse) (bool, error)) error {
	s, err := h.sessions.Open(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	var resp stateResponse
	err = s.Do(func(ctrl *controller.Controller) error {
		changed, err := op(ctrl, &resp)
		if err != nil {
			return err
		}
		resp.fill(ctrl, changed)
		return nil
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// fail переводит ошибку в HTTP-ответ {"error": ...}.
func fail(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, storage.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "document not found"})
	case errors.Is(err, service.ErrNoStore):
		return c.Status(http.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("[DESIGNER] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func badRequest(msg string) error {
	return fiber.NewError(http.StatusBadRequest, msg)
}

// decode разбирает JSON-тело. Пустое тело допустимо только при optional.
func decode(c fiber.Ctx, v any, optional bool) error {
	if len(c.Body()) == 0 {
		if optional {
			return nil
		}
		return badRequest("empty body")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return badRequest("invalid json")
	}
	return nil
}

func pageIndex(c fiber.Ctx) (int, error) {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return 0, badRequest("page index must be an integer")
	}
	return index, nil
}

func flag(c fiber.Ctx, key string) bool {
	switch c.Query(key) {
	case "1", "true", "yes":
		return true
	}
	return false
}
