package controller

import "cv-designer/internal/designer/models"

// ============================================================
// Layering
// ============================================================

// BringForward меняет элемент местами с ближайшим соседом сверху.
func (c *Controller) BringForward(id string) bool {
	return c.swapNeighbour(id, +1)
}

// SendBackward меняет элемент местами с ближайшим соседом снизу.
func (c *Controller) SendBackward(id string) bool {
	return c.swapNeighbour(id, -1)
}

func (c *Controller) swapNeighbour(id string, dir int) bool {
	p := c.page()
	if p == nil {
		return false
	}
	i := p.Index(id)
	if i < 0 {
		return false
	}

	order := models.PaintOrder(p.Elements)
	pos := indexOf(order, i)
	next := pos + dir
	if next < 0 || next >= len(order) {
		return false
	}

	a, b := &p.Elements[order[pos]], &p.Elements[order[next]]
	if a.ZIndex != b.ZIndex {
		a.ZIndex, b.ZIndex = b.ZIndex, a.ZIndex
	} else {
		// одинаковые zIndex: меняем местами в порядке отрисовки и перенумеровываем
		order[pos], order[next] = order[next], order[pos]
		for z, idx := range order {
			p.Elements[idx].ZIndex = z
		}
	}

	c.commit()
	return true
}

// BringToFront поднимает элемент над всеми остальными.
func (c *Controller) BringToFront(id string) bool {
	p := c.page()
	e := c.find(id)
	if e == nil {
		return false
	}

	top, others := 0, false
	for _, o := range p.Elements {
		if o.ID == id {
			continue
		}
		if !others || o.ZIndex > top {
			top = o.ZIndex
		}
		others = true
	}
	if !others || e.ZIndex > top {
		return false
	}

	e.ZIndex = top + 1
	c.commit()
	return true
}

// SendToBack опускает элемент под все остальные.
func (c *Controller) SendToBack(id string) bool {
	p := c.page()
	e := c.find(id)
	if e == nil {
		return false
	}

	bottom, others := 0, false
	for _, o := range p.Elements {
		if o.ID == id {
			continue
		}
		if !others || o.ZIndex < bottom {
			bottom = o.ZIndex
		}
		others = true
	}
	if !others || e.ZIndex < bottom {
		return false
	}

	e.ZIndex = bottom - 1
	c.commit()
	return true
}

// SetZIndex явно назначает zIndex.
func (c *Controller) SetZIndex(id string, z int) bool {
	e := c.find(id)
	if e == nil || e.ZIndex == z {
		return false
	}
	e.ZIndex = z
	c.commit()
	return true
}

func indexOf(order []int, v int) int {
	for i, o := range order {
		if o == v {
			return i
		}
	}
	return -1
}
