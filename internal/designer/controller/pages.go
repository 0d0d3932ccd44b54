package controller

import "cv-designer/internal/designer/models"

// ============================================================
// Pages
// ============================================================

// AddPage добавляет пустую страницу в конец и переходит на неё.
func (c *Controller) AddPage() int {
	c.doc.Pages = append(c.doc.Pages, models.Page{ID: c.newID(), Elements: []models.Element{}})
	c.doc.CurrentPageIndex = len(c.doc.Pages) - 1
	c.selection = nil
	c.commit()
	return c.doc.CurrentPageIndex
}

// DeletePage удаляет страницу. Единственную страницу удалить нельзя.
func (c *Controller) DeletePage(index int) bool {
	if len(c.doc.Pages) <= 1 || !c.validPage(index) {
		return false
	}

	current := c.doc.CurrentPageIndex
	c.doc.Pages = append(c.doc.Pages[:index], c.doc.Pages[index+1:]...)

	switch {
	case index < current:
		c.doc.CurrentPageIndex = current - 1
	case index == current:
		if current >= len(c.doc.Pages) {
			c.doc.CurrentPageIndex = len(c.doc.Pages) - 1
		}
		c.selection = nil
	}

	c.commit()
	return true
}

// DuplicatePage вставляет копию страницы (с новыми id) сразу после неё и переходит на копию.
func (c *Controller) DuplicatePage(index int) (int, bool) {
	if !c.validPage(index) {
		return 0, false
	}

	cp := c.doc.Pages[index].Clone()
	cp.ID = c.newID()
	for i := range cp.Elements {
		cp.Elements[i].ID = c.newID()
	}

	at := index + 1
	c.doc.Pages = append(c.doc.Pages, models.Page{})
	copy(c.doc.Pages[at+1:], c.doc.Pages[at:])
	c.doc.Pages[at] = cp

	c.doc.CurrentPageIndex = at
	c.selection = nil
	c.commit()
	return at, true
}

// GoToPage только переключает страницу: это навигация, в историю не пишется.
func (c *Controller) GoToPage(index int) bool {
	if !c.validPage(index) || index == c.doc.CurrentPageIndex {
		return false
	}
	c.doc.CurrentPageIndex = index
	c.selection = nil
	return true
}

// MovePage переставляет страницу; активной остаётся та же страница.
func (c *Controller) MovePage(from, to int) bool {
	if !c.validPage(from) || !c.validPage(to) || from == to {
		return false
	}

	currentID := c.doc.Pages[c.doc.CurrentPageIndex].ID
	moved := c.doc.Pages[from]
	pages := append(c.doc.Pages[:from:from], c.doc.Pages[from+1:]...)
	pages = append(pages[:to], append([]models.Page{moved}, pages[to:]...)...)
	c.doc.Pages = pages

	for i, p := range pages {
		if p.ID == currentID {
			c.doc.CurrentPageIndex = i
			break
		}
	}

	c.commit()
	return true
}

// ClearPage удаляет все элементы активной страницы.
func (c *Controller) ClearPage() bool {
	p := c.page()
	if p == nil || len(p.Elements) == 0 {
		return false
	}
	p.Elements = []models.Element{}
	c.selection = nil
	c.commit()
	return true
}

func (c *Controller) validPage(index int) bool {
	return index >= 0 && index < len(c.doc.Pages)
}
