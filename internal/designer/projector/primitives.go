package projector

import (
	"math"
	"strings"

	"cv-designer/internal/designer/models"
)

// ============================================================
// Primitives
// ============================================================

type Kind string

const (
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindPath    Kind = "path"
	KindLine    Kind = "line"
	KindText    Kind = "text"
	KindImage   Kind = "image"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Op - команда пути: M, L, C (кубическая кривая, три точки), Z.
type Op string

const (
	OpMove  Op = "M"
	OpLine  Op = "L"
	OpCubic Op = "C"
	OpClose Op = "Z"
)

type Segment struct {
	Op  Op      `json:"op"`
	Pts []Point `json:"pts,omitempty"`
}

type Path []Segment

// Paint: заливка и обводка. Пустой цвет означает «не рисовать».
type Paint struct {
	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Dash        []float64 `json:"dash,omitempty"`
	LineCap     string    `json:"lineCap,omitempty"`
}

type TextBox struct {
	Content    string  `json:"content"`
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	FontWeight string  `json:"fontWeight"`
	FontStyle  string  `json:"fontStyle"`
	Align      string  `json:"align"`
	VAlign     string  `json:"valign"`
	LineHeight float64 `json:"lineHeight"`
}

// Bold: fontWeight "bold" или числовой вес от 600.
func (t TextBox) Bold() bool {
	switch t.FontWeight {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

func (t TextBox) Italic() bool {
	return t.FontStyle == "italic" || t.FontStyle == "oblique"
}

// Primitive: одна визуальная команда в локальных координатах элемента.
// Для rect/ellipse/text/image используется рамка X/Y/Width/Height,
// для line: X1/Y1/X2/Y2, для path: Path.
type Primitive struct {
	Kind   Kind    `json:"kind"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Radius float64 `json:"radius,omitempty"`

	X1 float64 `json:"x1,omitempty"`
	Y1 float64 `json:"y1,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	Path Path `json:"path,omitempty"`
	Clip Path `json:"clip,omitempty"`

	Paint
	Text *TextBox `json:"text,omitempty"`
	Href string   `json:"href,omitempty"`
}

// Projection: всё, что нужно потребителю, чтобы нарисовать элемент.
type Projection struct {
	ID         string             `json:"id"`
	Type       models.ElementType `json:"type"`
	ZIndex     int                `json:"zIndex"`
	X          float64            `json:"x"`
	Y          float64            `json:"y"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Rotation   float64            `json:"rotation,omitempty"`
	Opacity    float64            `json:"opacity"`
	Primitives []Primitive        `json:"primitives"`
}

// ============================================================
// Path builders
// ============================================================

// kappa: смещение контрольных точек при аппроксимации четверти эллипса кубической кривой.
const kappa = 0.5522847498

func polygon(pts ...Point) Path {
	if len(pts) == 0 {
		return nil
	}
	out := make(Path, 0, len(pts)+1)
	out = append(out, Segment{Op: OpMove, Pts: []Point{pts[0]}})
	for _, p := range pts[1:] {
		out = append(out, Segment{Op: OpLine, Pts: []Point{p}})
	}
	return append(out, Segment{Op: OpClose})
}

func rectPath(x, y, w, h float64) Path {
	return polygon(Point{x, y}, Point{x + w, y}, Point{x + w, y + h}, Point{x, y + h})
}

func ellipsePath(x, y, w, h float64) Path {
	rx, ry := w/2, h/2
	cx, cy := x+rx, y+ry
	ox, oy := rx*kappa, ry*kappa
	return Path{
		{Op: OpMove, Pts: []Point{{cx + rx, cy}}},
		{Op: OpCubic, Pts: []Point{{cx + rx, cy + oy}, {cx + ox, cy + ry}, {cx, cy + ry}}},
		{Op: OpCubic, Pts: []Point{{cx - ox, cy + ry}, {cx - rx, cy + oy}, {cx - rx, cy}}},
		{Op: OpCubic, Pts: []Point{{cx - rx, cy - oy}, {cx - ox, cy - ry}, {cx, cy - ry}}},
		{Op: OpCubic, Pts: []Point{{cx + ox, cy - ry}, {cx + rx, cy - oy}, {cx + rx, cy}}},
		{Op: OpClose},
	}
}

// roundedRectPath: прямоугольник со скруглёнными углами; радиус не больше половины стороны.
func roundedRectPath(x, y, w, h, r float64) Path {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return rectPath(x, y, w, h)
	}
	k := r * (1 - kappa)
	return Path{
		{Op: OpMove, Pts: []Point{{x + r, y}}},
		{Op: OpLine, Pts: []Point{{x + w - r, y}}},
		{Op: OpCubic, Pts: []Point{{x + w - k, y}, {x + w, y + k}, {x + w, y + r}}},
		{Op: OpLine, Pts: []Point{{x + w, y + h - r}}},
		{Op: OpCubic, Pts: []Point{{x + w, y + h - k}, {x + w - k, y + h}, {x + w - r, y + h}}},
		{Op: OpLine, Pts: []Point{{x + r, y + h}}},
		{Op: OpCubic, Pts: []Point{{x + k, y + h}, {x, y + h - k}, {x, y + h - r}}},
		{Op: OpLine, Pts: []Point{{x, y + r}}},
		{Op: OpCubic, Pts: []Point{{x, y + k}, {x + k, y}, {x + r, y}}},
		{Op: OpClose},
	}
}

// Outline возвращает контур примитива-фигуры в виде пути.
// Для line/text/image: nil.
func (p Primitive) Outline() Path {
	switch p.Kind {
	case KindRect:
		return roundedRectPath(p.X, p.Y, p.Width, p.Height, p.Radius)
	case KindEllipse:
		return ellipsePath(p.X, p.Y, p.Width, p.Height)
	case KindPath:
		return p.Path
	}
	return nil
}

// String: запись пути в синтаксисе SVG d="...".
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(s.Op))
		for _, pt := range s.Pts {
			b.WriteByte(' ')
			b.WriteString(formatFloat(pt.X))
			b.WriteByte(' ')
			b.WriteString(formatFloat(pt.Y))
		}
	}
	return b.String()
}

// Vertices: опорные точки пути (без контрольных точек кривых).
func (p Path) Vertices() []Point {
	var out []Point
	for _, s := range p {
		if len(s.Pts) > 0 {
			out = append(out, s.Pts[len(s.Pts)-1])
		}
	}
	return out
}
