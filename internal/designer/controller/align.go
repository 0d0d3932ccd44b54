package controller

import (
	"sort"

	"cv-designer/internal/designer/geometry"
	"cv-designer/internal/designer/models"
)

// ============================================================
// Alignment
// ============================================================

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
	AlignTop    Alignment = "top"
	AlignMiddle Alignment = "middle"
	AlignBottom Alignment = "bottom"
)

func (a Alignment) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight, AlignTop, AlignMiddle, AlignBottom:
		return true
	}
	return false
}

type Axis string

const (
	Horizontal Axis = "horizontal"
	Vertical   Axis = "vertical"
)

func (a Axis) Valid() bool {
	return a == Horizontal || a == Vertical
}

// CanAlign: есть хотя бы один выделенный элемент.
func (c *Controller) CanAlign() bool {
	return len(c.selectedElements()) > 0
}

// CanDistribute: выделено три и больше.
func (c *Controller) CanDistribute() bool {
	return len(c.selectedElements()) >= 3
}

func (c *Controller) AlignLeft() bool   { return c.Align(AlignLeft) }
func (c *Controller) AlignCenter() bool { return c.Align(AlignCenter) }
func (c *Controller) AlignRight() bool  { return c.Align(AlignRight) }
func (c *Controller) AlignTop() bool    { return c.Align(AlignTop) }
func (c *Controller) AlignMiddle() bool { return c.Align(AlignMiddle) }
func (c *Controller) AlignBottom() bool { return c.Align(AlignBottom) }

// Align выравнивает выделение. Один элемент: относительно холста,
// несколько: относительно их общего прямоугольника. Меняется только позиция.
// Все сдвиги записываются одним шагом истории.
func (c *Controller) Align(mode Alignment) bool {
	if !mode.Valid() || !c.CanAlign() {
		return false
	}

	selected := c.selectedElements()

	target := geometry.Bounds{MinX: 0, MaxX: c.doc.PageWidth, MinY: 0, MaxY: c.doc.PageHeight}
	if len(selected) > 1 {
		target, _ = geometry.GetBounds(selected)
	}

	changed := false
	for _, s := range selected {
		e := c.find(s.ID)
		x, y := e.X, e.Y

		switch mode {
		case AlignLeft:
			x = target.MinX
		case AlignCenter:
			x = target.CenterX() - e.Width/2
		case AlignRight:
			x = target.MaxX - e.Width
		case AlignTop:
			y = target.MinY
		case AlignMiddle:
			y = target.CenterY() - e.Height/2
		case AlignBottom:
			y = target.MaxY - e.Height
		}

		if x != e.X || y != e.Y {
			e.X, e.Y = x, y
			changed = true
		}
	}

	if changed {
		c.commit()
	}
	return changed
}

// ============================================================
// Distribution
// ============================================================

func (c *Controller) DistributeHorizontally() bool { return c.Distribute(Horizontal) }
func (c *Controller) DistributeVertically() bool   { return c.Distribute(Vertical) }

// Distribute расставляет выделение с равными промежутками. Крайние внешние границы
// остаются на месте. Меньше трёх элементов: ничего не делает.
func (c *Controller) Distribute(axis Axis) bool {
	if !axis.Valid() || !c.CanDistribute() {
		return false
	}

	selected := c.selectedElements()
	pos := func(e models.Element) float64 { return e.X }
	size := func(e models.Element) float64 { return e.Width }
	if axis == Vertical {
		pos = func(e models.Element) float64 { return e.Y }
		size = func(e models.Element) float64 { return e.Height }
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return pos(selected[i]) < pos(selected[j])
	})

	bounds, _ := geometry.GetBounds(selected)
	start, extent := bounds.MinX, bounds.Width()
	if axis == Vertical {
		start, extent = bounds.MinY, bounds.Height()
	}

	var total float64
	for _, s := range selected {
		total += size(s)
	}
	gap := (extent - total) / float64(len(selected)-1)

	changed := false
	// после сортировки первый элемент стоит на start
	cursor := start + size(selected[0]) + gap
	for _, s := range selected[1:] {
		e := c.find(s.ID)
		if axis == Horizontal {
			changed = changed || e.X != cursor
			e.X = cursor
		} else {
			changed = changed || e.Y != cursor
			e.Y = cursor
		}
		cursor += size(s) + gap
	}

	if changed {
		c.commit()
	}
	return changed
}
