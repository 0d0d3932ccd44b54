package controller

import (
	"math"

	"cv-designer/internal/designer/models"
)

const (
	MinZoom = 0.25
	MaxZoom = 3.0
)

// ============================================================
// View settings
// ============================================================

// Настройки вида не являются изменением содержимого и в историю не пишутся,
// но сохраняются вместе с документом.

func (c *Controller) SetZoom(zoom float64) {
	c.doc.Zoom = math.Max(MinZoom, math.Min(MaxZoom, zoom))
	c.rev++
}

func (c *Controller) SetShowGrid(show bool) {
	c.doc.ShowGrid = show
	c.rev++
}

func (c *Controller) SetGridSize(size float64) {
	c.doc.GridSize = math.Max(1, size)
	c.rev++
}

func (c *Controller) SetShowMarginGuides(show bool) {
	c.doc.ShowMarginGuides = show
	c.rev++
}

func (c *Controller) SetSnapToGuides(snap bool) {
	c.doc.SnapToGuides = snap
	c.rev++
}

// SetPageMargins меняет поля страницы (содержимое документа, пишется в историю).
func (c *Controller) SetPageMargins(m models.Margins) bool {
	m.Top = math.Max(0, m.Top)
	m.Right = math.Max(0, m.Right)
	m.Bottom = math.Max(0, m.Bottom)
	m.Left = math.Max(0, m.Left)
	if m == c.doc.PageMargins {
		return false
	}
	c.doc.PageMargins = m
	c.commit()
	return true
}

// Rename меняет название документа.
func (c *Controller) Rename(name string) bool {
	if name == "" || name == c.doc.Name {
		return false
	}
	c.doc.Name = name
	c.commit()
	return true
}
