package controller

import "cv-designer/internal/designer/models"

// DuplicateOffset: сдвиг копии относительно оригинала.
const DuplicateOffset = 20.0

// ============================================================
// Element operations
// ============================================================

// AddElement накладывает partial на запись по умолчанию для типа, выдаёт новый id,
// добавляет элемент на активную страницу, выделяет его и пишет шаг истории.
// Для неизвестного типа ok=false.
func (c *Controller) AddElement(t models.ElementType, partial models.Patch) (string, bool) {
	p := c.page()
	if p == nil {
		return "", false
	}

	e, ok := models.DefaultElement(t)
	if !ok {
		return "", false
	}

	partial.Apply(&e)
	e.ID = c.newID()
	e.ZIndex = len(p.Elements)
	e.Normalize(false)

	p.Elements = append(p.Elements, e)
	c.selection = []string{e.ID}
	c.commit()
	return e.ID, true
}

// UpdateElement сливает patch с элементом. commit=false: черновик без записи в историю.
// Неизвестный id: не ошибка, просто false.
func (c *Controller) UpdateElement(id string, patch models.Patch, commit bool) bool {
	e := c.find(id)
	if e == nil {
		return false
	}

	patch.Apply(e)
	e.Normalize(!commit)

	if commit {
		c.commit()
	} else {
		c.draft()
	}
	return true
}

// UpdateStyle сливает только стиль.
func (c *Controller) UpdateStyle(id string, style models.Style, commit bool) bool {
	return c.UpdateElement(id, models.Patch{Style: style}, commit)
}

// DeleteElement удаляет элемент и убирает его из выделения.
func (c *Controller) DeleteElement(id string) bool {
	p := c.page()
	if p == nil {
		return false
	}
	i := p.Index(id)
	if i < 0 {
		return false
	}

	p.Elements = append(p.Elements[:i], p.Elements[i+1:]...)
	c.deselect(id)
	c.commit()
	return true
}

// DeleteSelected удаляет все выделенные элементы одним шагом.
func (c *Controller) DeleteSelected() int {
	p := c.page()
	if p == nil || len(c.selection) == 0 {
		return 0
	}

	selected := c.selectedSet()
	kept := p.Elements[:0]
	removed := 0
	for _, e := range p.Elements {
		if selected[e.ID] {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	p.Elements = kept
	c.selection = nil

	if removed > 0 {
		c.commit()
	}
	return removed
}

// DuplicateElement копирует элемент со сдвигом и новым id, копия выделяется.
func (c *Controller) DuplicateElement(id string) (string, bool) {
	src := c.find(id)
	if src == nil {
		return "", false
	}

	newID := c.duplicate(*src)
	c.selection = []string{newID}
	c.commit()
	return newID, true
}

// DuplicateSelected копирует выделение, новое выделение: копии.
func (c *Controller) DuplicateSelected() []string {
	if len(c.selectedElements()) == 0 {
		return nil
	}

	var ids []string
	for _, e := range c.selectedElements() {
		ids = append(ids, c.duplicate(e))
	}
	c.selection = ids
	c.commit()
	return ids
}

func (c *Controller) duplicate(src models.Element) string {
	p := c.page()
	e := src.Clone()
	e.ID = c.newID()
	e.X += DuplicateOffset
	e.Y += DuplicateOffset
	e.ZIndex = len(p.Elements)
	p.Elements = append(p.Elements, e)
	return e.ID
}

// LoadTemplate загружает готовый набор элементов на активную страницу одним шагом.
// replace=true очищает страницу. Пустые и повторяющиеся id заменяются новыми,
// элементы неизвестного типа пропускаются. Возвращает число загруженных.
func (c *Controller) LoadTemplate(elements []models.Element, replace bool) int {
	p := c.page()
	if p == nil {
		return 0
	}

	if replace {
		p.Elements = []models.Element{}
	}

	used := make(map[string]bool, len(p.Elements)+len(elements))
	for _, e := range p.Elements {
		used[e.ID] = true
	}

	loaded := 0
	for _, src := range elements {
		if !src.Type.Valid() {
			continue
		}
		e := src.Clone()
		if e.ID == "" || used[e.ID] {
			e.ID = c.newID()
		}
		used[e.ID] = true
		e.Normalize(false)
		p.Elements = append(p.Elements, e)
		loaded++
	}

	c.selection = nil
	if loaded > 0 || replace {
		c.commit()
	}
	return loaded
}
