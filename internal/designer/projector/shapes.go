package projector

import (
	"math"

	"cv-designer/internal/designer/models"
)

// ============================================================
// Parametric shapes
// ============================================================

// Все контуры строятся в рамке 0..w × 0..h. Лучи звёзд и многоугольников
// начинаются с -90° (вершина вверх) и идут по часовой стрелке.

const (
	starInner  = 0.4
	burstInner = 0.6
	badgeInner = 0.9
)

// ShapePath возвращает замкнутый контур для геометрического варианта.
// rectangle/circle/ellipse сюда не входят: для них есть свои примитивы.
func ShapePath(t models.ShapeType, w, h float64) (Path, bool) {
	switch t {
	case models.ShapeTriangle:
		return polygon(Point{w / 2, 0}, Point{w, h}, Point{0, h}), true
	case models.ShapeDiamond:
		return polygon(Point{w / 2, 0}, Point{w, h / 2}, Point{w / 2, h}, Point{0, h / 2}), true
	case models.ShapePentagon:
		return polygon(regularPolygon(5, w, h)...), true
	case models.ShapeHexagon:
		return polygon(regularPolygon(6, w, h)...), true
	case models.ShapeOctagon:
		return polygon(regularPolygon(8, w, h)...), true
	case models.ShapeStar:
		return polygon(starPoints(5, starInner, w, h)...), true
	case models.ShapeBurst:
		return polygon(starPoints(12, burstInner, w, h)...), true
	case models.ShapeBadge:
		return polygon(starPoints(16, badgeInner, w, h)...), true
	case models.ShapeHeart:
		return heartPath(w, h), true
	case models.ShapeArrowRight:
		return polygon(arrowRight(w, h)...), true
	case models.ShapeArrowLeft:
		return polygon(mirrorX(arrowRight(w, h), w)...), true
	case models.ShapeArrowUp:
		return polygon(arrowUp(w, h)...), true
	case models.ShapeArrowDown:
		return polygon(mirrorY(arrowUp(w, h), h)...), true
	case models.ShapeChevron:
		return polygon(
			Point{0, 0}, Point{0.75 * w, 0}, Point{w, h / 2},
			Point{0.75 * w, h}, Point{0, h}, Point{0.25 * w, h / 2},
		), true
	case models.ShapeShield:
		return Path{
			{Op: OpMove, Pts: []Point{{0, 0}}},
			{Op: OpLine, Pts: []Point{{w, 0}}},
			{Op: OpLine, Pts: []Point{{w, 0.45 * h}}},
			{Op: OpCubic, Pts: []Point{{w, 0.75 * h}, {0.75 * w, 0.9 * h}, {0.5 * w, h}}},
			{Op: OpCubic, Pts: []Point{{0.25 * w, 0.9 * h}, {0, 0.75 * h}, {0, 0.45 * h}}},
			{Op: OpClose},
		}, true
	case models.ShapeBookmark:
		return polygon(Point{0, 0}, Point{w, 0}, Point{w, h}, Point{w / 2, 0.75 * h}, Point{0, h}), true
	case models.ShapeFlag:
		return polygon(Point{0, 0}, Point{w, 0}, Point{0.75 * w, h / 2}, Point{w, h}, Point{0, h}), true
	}
	return nil, false
}

// regularPolygon: n вершин на эллипсе, вписанном в рамку.
func regularPolygon(n int, w, h float64) []Point {
	cx, cy := w/2, h/2
	pts := make([]Point, n)
	for i := range pts {
		a := (-90 + float64(i)*360/float64(n)) * math.Pi / 180
		pts[i] = Point{cx + cx*math.Cos(a), cy + cy*math.Sin(a)}
	}
	return pts
}

// starPoints: 2n вершин, чередуются внешний радиус r = min(w,h)/2 и внутренний inner*r.
func starPoints(n int, inner, w, h float64) []Point {
	cx, cy := w/2, h/2
	r := math.Min(w, h) / 2
	step := 180 / float64(n)
	pts := make([]Point, 2*n)
	for i := range pts {
		radius := r
		if i%2 == 1 {
			radius = r * inner
		}
		a := (-90 + float64(i)*step) * math.Pi / 180
		pts[i] = Point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	return pts
}

func heartPath(w, h float64) Path {
	return Path{
		{Op: OpMove, Pts: []Point{{0.5 * w, 0.3 * h}}},
		{Op: OpCubic, Pts: []Point{{0.5 * w, 0.15 * h}, {0.4 * w, 0}, {0.25 * w, 0}}},
		{Op: OpCubic, Pts: []Point{{0.1 * w, 0}, {0, 0.15 * h}, {0, 0.3 * h}}},
		{Op: OpCubic, Pts: []Point{{0, 0.55 * h}, {0.25 * w, 0.75 * h}, {0.5 * w, h}}},
		{Op: OpCubic, Pts: []Point{{0.75 * w, 0.75 * h}, {w, 0.55 * h}, {w, 0.3 * h}}},
		{Op: OpCubic, Pts: []Point{{w, 0.15 * h}, {0.9 * w, 0}, {0.75 * w, 0}}},
		{Op: OpCubic, Pts: []Point{{0.6 * w, 0}, {0.5 * w, 0.15 * h}, {0.5 * w, 0.3 * h}}},
		{Op: OpClose},
	}
}

func arrowRight(w, h float64) []Point {
	return []Point{
		{0, 0.25 * h}, {0.6 * w, 0.25 * h}, {0.6 * w, 0}, {w, 0.5 * h},
		{0.6 * w, h}, {0.6 * w, 0.75 * h}, {0, 0.75 * h},
	}
}

func arrowUp(w, h float64) []Point {
	return []Point{
		{0.25 * w, h}, {0.25 * w, 0.4 * h}, {0, 0.4 * h}, {0.5 * w, 0},
		{w, 0.4 * h}, {0.75 * w, 0.4 * h}, {0.75 * w, h},
	}
}

func mirrorX(pts []Point, w float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{w - p.X, p.Y}
	}
	return out
}

func mirrorY(pts []Point, h float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{p.X, h - p.Y}
	}
	return out
}

// maskPath: контур маски фотографии.
func maskPath(m models.MaskType, w, h, radius float64) Path {
	switch m {
	case models.MaskCircle:
		return ellipsePath(0, 0, w, h)
	case models.MaskRounded:
		if radius <= 0 {
			radius = math.Min(w, h) * 0.15
		}
		return roundedRectPath(0, 0, w, h, radius)
	case models.MaskHexagon:
		return polygon(regularPolygon(6, w, h)...)
	}
	return rectPath(0, 0, w, h)
}

// wavePath: волнистая линия по центру рамки, шаг около 20px.
func wavePath(w, h float64) Path {
	mid := h / 2
	amp := math.Min(h/2, 4)
	n := math.Max(1, math.Round(w/20))
	step := w / n

	out := Path{{Op: OpMove, Pts: []Point{{0, mid}}}}
	for i := 0.0; i < n; i++ {
		x := i * step
		out = append(out, Segment{Op: OpCubic, Pts: []Point{
			{x + step/3, mid - amp}, {x + 2*step/3, mid + amp}, {x + step, mid},
		}})
	}
	return out
}
