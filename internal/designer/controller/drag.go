package controller

import (
	"cv-designer/internal/designer/geometry"
	"cv-designer/internal/designer/models"
)

// ============================================================
// Gestures (drag / resize)
// ============================================================

// MoveElement: черновое перемещение во время перетаскивания. Остальные выделенные
// элементы двигаются на ту же дельту. При включённых направляющих позиция
// подтягивается к ближайшей линии. Запись в историю: в EndGesture.
func (c *Controller) MoveElement(id string, x, y float64) (geometry.SnapResult, bool) {
	e := c.find(id)
	if e == nil {
		return geometry.SnapResult{Guides: []geometry.Guide{}}, false
	}

	moving := c.IsSelected(id)
	result := geometry.SnapResult{Guides: []geometry.Guide{}}

	if c.doc.SnapToGuides {
		candidate := *e
		candidate.X, candidate.Y = x, y

		// элементы, которые едут вместе с перетаскиваемым, не могут быть опорой
		var siblings []models.Element
		for _, o := range c.page().Elements {
			if o.ID == id || (moving && c.IsSelected(o.ID)) {
				continue
			}
			siblings = append(siblings, o)
		}

		result = geometry.ComputeSnapGuides(candidate, siblings, c.doc.PageWidth, c.doc.PageHeight, "")
		if result.SnapPositions.X != nil {
			x = *result.SnapPositions.X
		}
		if result.SnapPositions.Y != nil {
			y = *result.SnapPositions.Y
		}
	}

	dx, dy := x-e.X, y-e.Y
	e.X, e.Y = x, y

	if moving {
		for _, sid := range c.selection {
			if sid == id {
				continue
			}
			if o := c.find(sid); o != nil {
				o.X += dx
				o.Y += dy
			}
		}
	}

	c.draft()
	return result, true
}

// ResizeElement: черновое изменение рамки. Отрицательный размер поджимается.
func (c *Controller) ResizeElement(id string, x, y, width, height float64) bool {
	return c.UpdateElement(id, models.Frame(x, y, width, height), false)
}

// EndGesture завершает жест одним шагом истории, если были черновые изменения.
func (c *Controller) EndGesture() bool {
	if !c.dirty {
		return false
	}
	p := c.page()
	for i := range p.Elements {
		p.Elements[i].Normalize(false)
	}
	c.commit()
	return true
}

// NudgeSelected сдвигает выделение на (dx, dy) одним шагом (стрелки клавиатуры).
func (c *Controller) NudgeSelected(dx, dy float64) bool {
	if len(c.selection) == 0 || (dx == 0 && dy == 0) {
		return false
	}
	moved := false
	for _, id := range c.selection {
		if e := c.find(id); e != nil {
			e.X += dx
			e.Y += dy
			moved = true
		}
	}
	if moved {
		c.commit()
	}
	return moved
}
