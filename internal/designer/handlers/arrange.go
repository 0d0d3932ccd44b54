package handlers

import (
	"cv-designer/internal/designer/controller"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Selection
// ============================================================

type selectRequest struct {
	ID       string `json:"id"`
	Additive bool   `json:"additive"`
	All      bool   `json:"all"`
	Clear    bool   `json:"clear"`
}

// Select: {id, additive} | {all: true} | {clear: true}.
func (h *DesignerHandler) Select(c fiber.Ctx) error {
	var req selectRequest
	if err := decode(c, &req, false); err != nil {
		return fail(c, err)
	}
	if req.ID == "" && !req.All && !req.Clear {
		return fail(c, badRequest("id, all or clear required"))
	}

	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		switch {
		case req.Clear:
			ctrl.ClearSelection()
			return true, nil
		case req.All:
			ctrl.SelectAll()
			return true, nil
		default:
			return ctrl.SelectElement(req.ID, req.Additive), nil
		}
	})
}

func (h *DesignerHandler) DeleteSelected(c fiber.Ctx) error {
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.DeleteSelected() > 0, nil
	})
}

func (h *DesignerHandler) DuplicateSelected(c fiber.Ctx) error {
	return h.mutateWith(c, func(ctrl *controller.Controller, resp *stateResponse) (bool, error) {
		resp.IDs = ctrl.DuplicateSelected()
		return len(resp.IDs) > 0, nil
	})
}

type nudgeRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (h *DesignerHandler) Nudge(c fiber.Ctx) error {
	var req nudgeRequest
	if err := decode(c, &req, false); err != nil {
		return fail(c, err)
	}
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.NudgeSelected(req.DX, req.DY), nil
	})
}

// ============================================================
// Align & distribute
// ============================================================

func (h *DesignerHandler) Align(c fiber.Ctx) error {
	mode := controller.Alignment(c.Params("mode"))
	if !mode.Valid() {
		return fail(c, badRequest("mode must be one of left, center, right, top, middle, bottom"))
	}
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.Align(mode), nil
	})
}

func (h *DesignerHandler) Distribute(c fiber.Ctx) error {
	axis := controller.Axis(c.Params("axis"))
	if !axis.Valid() {
		return fail(c, badRequest("axis must be horizontal or vertical"))
	}
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.Distribute(axis), nil
	})
}

// ============================================================
// History
// ============================================================

func (h *DesignerHandler) Undo(c fiber.Ctx) error {
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.Undo(), nil
	})
}

func (h *DesignerHandler) Redo(c fiber.Ctx) error {
	return h.mutate(c, func(ctrl *controller.Controller) (bool, error) {
		return ctrl.Redo(), nil
	})
}
