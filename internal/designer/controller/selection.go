package controller

import "cv-designer/internal/designer/models"

// ============================================================
// Selection
// ============================================================

// SelectElement: additive=false заменяет выделение на {id}, additive=true (shift-click)
// переключает принадлежность id. id вне активной страницы игнорируется.
func (c *Controller) SelectElement(id string, additive bool) bool {
	if c.find(id) == nil {
		return false
	}

	if !additive {
		c.selection = []string{id}
		return true
	}

	if c.IsSelected(id) {
		c.deselect(id)
		return true
	}
	c.selection = append(c.selection, id)
	return true
}

func (c *Controller) SelectAll() {
	p := c.page()
	c.selection = c.selection[:0]
	if p == nil {
		return
	}
	for _, e := range p.Elements {
		c.selection = append(c.selection, e.ID)
	}
}

func (c *Controller) ClearSelection() {
	c.selection = nil
}

// SelectedIDs возвращает копию выделения в порядке выбора.
func (c *Controller) SelectedIDs() []string {
	return append([]string{}, c.selection...)
}

func (c *Controller) IsSelected(id string) bool {
	for _, s := range c.selection {
		if s == id {
			return true
		}
	}
	return false
}

// SelectedElements возвращает копии выделенных элементов в порядке выбора.
func (c *Controller) SelectedElements() []models.Element {
	return c.selectedElements()
}

func (c *Controller) selectedElements() []models.Element {
	out := make([]models.Element, 0, len(c.selection))
	for _, id := range c.selection {
		if e := c.find(id); e != nil {
			out = append(out, e.Clone())
		}
	}
	return out
}

func (c *Controller) selectedSet() map[string]bool {
	set := make(map[string]bool, len(c.selection))
	for _, id := range c.selection {
		set[id] = true
	}
	return set
}

func (c *Controller) deselect(id string) {
	kept := c.selection[:0]
	for _, s := range c.selection {
		if s != id {
			kept = append(kept, s)
		}
	}
	c.selection = kept
}
