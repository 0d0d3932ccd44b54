package geometry

import (
	"math"

	"cv-designer/internal/designer/models"
)

// ============================================================
// Bounds
// ============================================================

type Bounds struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

func (b Bounds) Width() float64   { return b.MaxX - b.MinX }
func (b Bounds) Height() float64  { return b.MaxY - b.MinY }
func (b Bounds) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }
func (b Bounds) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

// GetBounds считает общий прямоугольник по внешним краям элементов.
// Для пустого набора ok=false, значения не определены.
func GetBounds(elements []models.Element) (Bounds, bool) {
	if len(elements) == 0 {
		return Bounds{MinX: math.NaN(), MaxX: math.NaN(), MinY: math.NaN(), MaxY: math.NaN()}, false
	}

	b := Bounds{
		MinX: math.MaxFloat64, MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64, MaxY: -math.MaxFloat64,
	}
	for _, e := range elements {
		b.MinX = math.Min(b.MinX, e.X)
		b.MinY = math.Min(b.MinY, e.Y)
		b.MaxX = math.Max(b.MaxX, e.Right())
		b.MaxY = math.Max(b.MaxY, e.Bottom())
	}
	return b, true
}
