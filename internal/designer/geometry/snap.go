package geometry

import (
	"math"

	"cv-designer/internal/designer/models"
)

// ============================================================
// Smart guides
// ============================================================

// SnapThreshold: расстояние в px, строго меньше которого срабатывает прилипание.
const SnapThreshold = 8.0

type Axis string

const (
	AxisVertical   Axis = "vertical"   // линия x = const
	AxisHorizontal Axis = "horizontal" // линия y = const
)

type SourceType string

const (
	SourceCanvas       SourceType = "canvas"
	SourceCanvasCenter SourceType = "canvas-center"
	SourceElement      SourceType = "element"
)

type Guide struct {
	Axis       Axis       `json:"axis"`
	Position   float64    `json:"position"`
	SourceType SourceType `json:"sourceType"`
}

// SnapPositions: координаты левого верхнего угла, куда нужно поставить элемент.
// nil означает, что по оси прилипания нет.
type SnapPositions struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}

type SnapResult struct {
	Guides        []Guide       `json:"guides"`
	SnapPositions SnapPositions `json:"snapPositions"`
}

// Vertical возвращает только вертикальные направляющие.
func (r SnapResult) Vertical() []Guide { return r.filter(AxisVertical) }

// Horizontal возвращает только горизонтальные направляющие.
func (r SnapResult) Horizontal() []Guide { return r.filter(AxisHorizontal) }

func (r SnapResult) filter(axis Axis) []Guide {
	var out []Guide
	for _, g := range r.Guides {
		if g.Axis == axis {
			out = append(out, g)
		}
	}
	return out
}

type snapLine struct {
	pos    float64
	source SourceType
}

// ComputeSnapGuides ищет направляющие для перемещаемого элемента относительно холста
// и остальных элементов (кроме excludeID и самого moving).
func ComputeSnapGuides(moving models.Element, all []models.Element, canvasWidth, canvasHeight float64, excludeID string) SnapResult {
	vertical := []snapLine{
		{pos: 0, source: SourceCanvas},
		{pos: canvasWidth, source: SourceCanvas},
		{pos: canvasWidth / 2, source: SourceCanvasCenter},
	}
	horizontal := []snapLine{
		{pos: 0, source: SourceCanvas},
		{pos: canvasHeight, source: SourceCanvas},
		{pos: canvasHeight / 2, source: SourceCanvasCenter},
	}

	for _, e := range all {
		if e.ID == moving.ID || (excludeID != "" && e.ID == excludeID) {
			continue
		}
		vertical = append(vertical,
			snapLine{pos: e.X, source: SourceElement},
			snapLine{pos: e.Right(), source: SourceElement},
			snapLine{pos: e.CenterX(), source: SourceElement},
		)
		horizontal = append(horizontal,
			snapLine{pos: e.Y, source: SourceElement},
			snapLine{pos: e.Bottom(), source: SourceElement},
			snapLine{pos: e.CenterY(), source: SourceElement},
		)
	}

	result := SnapResult{Guides: []Guide{}}

	var vGuides, hGuides []Guide
	result.SnapPositions.X, vGuides = snapAxis(AxisVertical, moving.X, moving.Width, vertical)
	result.SnapPositions.Y, hGuides = snapAxis(AxisHorizontal, moving.Y, moving.Height, horizontal)

	result.Guides = append(result.Guides, vGuides...)
	result.Guides = append(result.Guides, hGuides...)
	return result
}

// snapAxis проверяет начало, конец и центр отрезка [start, start+size] против всех линий.
// Кандидат заменяет текущий лучший, только если его расстояние строго меньше
// смещения, которое дал бы текущий лучший (|start - best|).
func snapAxis(axis Axis, start, size float64, lines []snapLine) (*float64, []Guide) {
	var best *float64
	var guides []Guide
	seen := make(map[float64]bool, len(lines))

	edges := [3]float64{0, size, size / 2}

	for _, line := range lines {
		matched := false
		for _, offset := range edges {
			d := math.Abs(start + offset - line.pos)
			if d >= SnapThreshold {
				continue
			}
			matched = true

			if best == nil || d < math.Abs(start-*best) {
				placed := line.pos - offset
				best = &placed
			}
		}

		if matched && !seen[line.pos] {
			seen[line.pos] = true
			guides = append(guides, Guide{Axis: axis, Position: line.pos, SourceType: line.source})
		}
	}

	return best, guides
}
