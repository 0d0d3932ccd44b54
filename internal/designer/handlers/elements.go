package handlers

import (
	"cv-designer/internal/designer/controller"
	"cv-designer/internal/designer/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Elements
// ============================================================

type addRequest struct {
	Type models.ElementType `json:"type"`
	models.Patch
}

// AddElement создаёт элемент с настройками по умолчанию, поверх которых кладётся patch.
func (h *DesignerHandler) AddElement(c fiber.Ctx) error {
	var req addRequest
	if err := decode(c, &req, false); err != nil {
		return fail(c, err)
	}
	if !req.Type.Valid() {
		return fail(c, badRequest("unknown element type"))
	}

	return h.mutateWith(c, func(ctrl *controller.Controller, resp *stateResponse) (bool, error) {
		id, ok := ctrl.AddElement(req.Type, req.Patch)
		resp.ID = id
		return ok, nil
	})
}

// UpdateElement: без ?commit=1 изменение остаётся черновиком.
func (h *DesignerHandler) UpdateElement(c fiber.Ctx) error {
	var patch models.Patch
	if err := decode(c, &patch, false); err != nil {
		return fail(c, err)
	}
	commit := flag(c, "commit")
	if patch.Empty() && !commit {
		return fail(c, badRequest("empty patch"))
	}
	id := c.Params("eid")

	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.UpdateElement(id, patch, commit), nil
	})
}

func (h *DesignerHandler) DeleteElement(c fiber.Ctx) error {
	id := c.Params("eid")
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.DeleteElement(id), nil
	})
}

func (h *DesignerHandler) DuplicateElement(c fiber.Ctx) error {
	id := c.Params("eid")
	return h.mutateWith(c, func(ctrl *controller.Controller, resp *stateResponse) (bool, error) {
		newID, ok := ctrl.DuplicateElement(id)
		resp.ID = newID
		return ok, nil
	})
}

// ============================================================
// Gestures
// ============================================================

type moveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MoveElement: черновое перемещение, в ответе направляющие и позиции прилипания.
func (h *DesignerHandler) MoveElement(c fiber.Ctx) error {
	var req moveRequest
	if err := decode(c, &req, false); err != nil {
		return fail(c, err)
	}
	id := c.Params("eid")

	return h.mutateWith(c, func(ctrl *controller.Controller, resp *stateResponse) (bool, error) {
		snap, ok := ctrl.MoveElement(id, req.X, req.Y)
		resp.Snap = &snap
		return ok, nil
	})
}

type resizeRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (h *DesignerHandler) ResizeElement(c fiber.Ctx) error {
	var req resizeRequest
	if err := decode(c, &req, false); err != nil {
		return fail(c, err)
	}
	id := c.Params("eid")

	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.ResizeElement(id, req.X, req.Y, req.Width, req.Height), nil
	})
}

// Commit завершает жест: черновые изменения становятся одним шагом истории.
func (h *DesignerHandler) Commit(c fiber.Ctx) error {
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.EndGesture(), nil
	})
}

// ============================================================
// Layering
// ============================================================

type layerRequest struct {
	Op     string `json:"op"`
	ZIndex int    `json:"zIndex"`
}

func (h *DesignerHandler) Layer(c fiber.Ctx) error {
	var req layerRequest
	if err := decode(c, &req, false); err != nil {
		return fail(c, err)
	}
	id := c.Params("eid")

	var op func(ctrl *controller.Controller) bool
	switch req.Op {
	case "forward":
		op = func(ctrl *controller.Controller) bool { return ctrl.BringForward(id) }
	case "backward":
		op = func(ctrl *controller.Controller) bool { return ctrl.SendBackward(id) }
	case "front":
		op = func(ctrl *controller.Controller) bool { return ctrl.BringToFront(id) }
	case "back":
		op = func(ctrl *controller.Controller) bool { return ctrl.SendToBack(id) }
	case "set":
		op = func(ctrl *controller.Controller) bool { return ctrl.SetZIndex(id, req.ZIndex) }
	default:
		return fail(c, badRequest("op must be one of forward, backward, front, back, set"))
	}

	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return op(ctrl), nil
	})
}
