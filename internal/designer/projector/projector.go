package projector

import (
	"fmt"
	"math"

	"cv-designer/internal/designer/models"
)

// ============================================================
// Projector
// ============================================================

// Проекция зависит только от элемента. Выделение, hover и состояние
// холста на неё не влияют. Читаются только перечисленные ниже ключи стиля,
// остальные игнорируются.
const (
	keyBackground   = "backgroundColor"
	keyBorderColor  = "borderColor"
	keyBorderWidth  = "borderWidth"
	keyBorderRadius = "borderRadius"
	keyColor        = "color"
	keyFontFamily   = "fontFamily"
	keyFontSize     = "fontSize"
	keyFontWeight   = "fontWeight"
	keyFontStyle    = "fontStyle"
	keyTextAlign    = "textAlign"
	keyLineHeight   = "lineHeight"
	keyPadding      = "padding"
	keyOpacity      = "opacity"
	keyThickness    = "thickness"
	keyProgress     = "progressColor"
	keyLabelColor   = "labelColor"
	keyShowLabel    = "showLabel"
	keyShowPercent  = "showPercentage"
	keyColumnFill   = "columnBackground"
)

const (
	defaultFontFamily = "Inter"
	defaultLineHeight = 1.4
)

// Project переводит элемент в набор примитивов. Неизвестный тип или
// неизвестный вариант фигуры дают ok=false.
func Project(e models.Element) (Projection, bool) {
	prims, ok := primitives(e)
	if !ok {
		return Projection{}, false
	}

	return Projection{
		ID:         e.ID,
		Type:       e.Type,
		ZIndex:     e.ZIndex,
		X:          e.X,
		Y:          e.Y,
		Width:      e.Width,
		Height:     e.Height,
		Rotation:   e.Rotation,
		Opacity:    clamp(e.Style.Float(keyOpacity, 1), 0, 1),
		Primitives: prims,
	}, true
}

// ProjectPage проецирует элементы страницы в порядке отрисовки.
// Элементы нулевой площади и непроецируемые пропускаются.
func ProjectPage(elements []models.Element) []Projection {
	out := make([]Projection, 0, len(elements))
	for _, i := range models.PaintOrder(elements) {
		e := elements[i]
		if !e.Visible() {
			continue
		}
		if p, ok := Project(e); ok {
			out = append(out, p)
		}
	}
	return out
}

func primitives(e models.Element) ([]Primitive, bool) {
	w, h, s := e.Width, e.Height, e.Style

	switch e.Type {
	case models.TypeText:
		return projectText(e, w, h, s), true
	case models.TypeShape:
		return projectShape(orShape(e.ShapeType, models.ShapeRectangle), w, h, s, "#3b82f6")
	case models.TypeAdvancedShape:
		return projectShape(orShape(e.ShapeType, models.ShapeStar), w, h, s, "#f59e0b")
	case models.TypeLine:
		return []Primitive{hline(0, w, h/2, Paint{
			Stroke:      color(s, keyColor, "#374151"),
			StrokeWidth: s.Float(keyThickness, 2),
		})}, true
	case models.TypeDivider:
		return projectDivider(e.DividerType, w, h, s)
	case models.TypeIcon:
		return projectIcon(e.IconName, w, h, s), true
	case models.TypePhotoPlaceholder:
		return projectPhoto(e, w, h, s)
	case models.TypeProgressBar:
		return projectProgress(e, w, h, s), true
	case models.TypeSection:
		return projectSection(e, w, h, s), true
	case models.TypeColumns:
		return projectColumns(e, w, h, s), true
	case models.TypeBanner:
		return projectBanner(e, w, h, s)
	}
	return nil, false
}

// ============================================================
// Per-type projections
// ============================================================

func projectText(e models.Element, w, h float64, s models.Style) []Primitive {
	var out []Primitive
	if box, ok := frame(w, h, s); ok {
		out = append(out, box)
	}
	pad := math.Max(0, s.Float(keyPadding, 0))
	out = append(out, textPrim(pad, pad, w-2*pad, h-2*pad, textBox(e.Content, s, 14, "left", "top"), color(s, keyColor, "#1f2937")))
	return out
}

func projectShape(t models.ShapeType, w, h float64, s models.Style, defFill string) ([]Primitive, bool) {
	paint := Paint{Fill: color(s, keyBackground, defFill)}
	paint.Stroke, paint.StrokeWidth = border(s, "#000000")

	p, ok := shapePrim(t, w, h, paint, s.Float(keyBorderRadius, 0))
	if !ok {
		return nil, false
	}
	return []Primitive{p}, true
}

func shapePrim(t models.ShapeType, w, h float64, paint Paint, radius float64) (Primitive, bool) {
	switch t {
	case models.ShapeRectangle:
		return Primitive{Kind: KindRect, Width: w, Height: h, Radius: math.Max(0, radius), Paint: paint}, true
	case models.ShapeCircle:
		d := math.Min(w, h)
		return Primitive{Kind: KindEllipse, X: (w - d) / 2, Y: (h - d) / 2, Width: d, Height: d, Paint: paint}, true
	case models.ShapeEllipse:
		return Primitive{Kind: KindEllipse, Width: w, Height: h, Paint: paint}, true
	}
	path, ok := ShapePath(t, w, h)
	if !ok {
		return Primitive{}, false
	}
	return Primitive{Kind: KindPath, Path: path, Paint: paint}, true
}

func projectDivider(t models.DividerType, w, h float64, s models.Style) ([]Primitive, bool) {
	paint := Paint{
		Stroke:      color(s, keyColor, "#d1d5db"),
		StrokeWidth: math.Max(0.5, s.Float(keyThickness, 1)),
	}
	th, mid := paint.StrokeWidth, h/2

	switch t {
	case models.DividerSolid, "":
		return []Primitive{hline(0, w, mid, paint)}, true
	case models.DividerDashed:
		paint.Dash = []float64{4 * th, 3 * th}
		return []Primitive{hline(0, w, mid, paint)}, true
	case models.DividerDotted:
		paint.Dash = []float64{th, 2 * th}
		paint.LineCap = "round"
		return []Primitive{hline(0, w, mid, paint)}, true
	case models.DividerDouble:
		return []Primitive{hline(0, w, mid-th, paint), hline(0, w, mid+th, paint)}, true
	case models.DividerWave:
		return []Primitive{{Kind: KindPath, Path: wavePath(w, h), Paint: paint}}, true
	}
	return nil, false
}

// glyphs: иконки, которые рисуются символом. Геометрические имена
// (star, heart, circle, ...) рисуются контуром той же фигуры.
var glyphs = map[string]string{
	"email":     "✉",
	"mail":      "✉",
	"phone":     "☎",
	"location":  "⌖",
	"home":      "⌂",
	"website":   "⊕",
	"globe":     "⊕",
	"link":      "∞",
	"user":      "☺",
	"calendar":  "▦",
	"check":     "✓",
	"music":     "♪",
	"sun":       "☀",
	"education": "✎",
	"work":      "⚒",
	"linkedin":  "in",
	"github":    "gh",
	"twitter":   "tw",
}

const fallbackGlyph = "•"

func projectIcon(name string, w, h float64, s models.Style) []Primitive {
	fill := color(s, keyColor, "#374151")
	if shape := models.ShapeType(name); shape.Valid() {
		if p, ok := shapePrim(shape, w, h, Paint{Fill: fill}, 0); ok {
			return []Primitive{p}
		}
	}

	glyph, ok := glyphs[name]
	if !ok {
		glyph = fallbackGlyph
	}
	tb := TextBox{
		Content:    glyph,
		FontFamily: s.String(keyFontFamily, defaultFontFamily),
		FontSize:   math.Min(w, h) * 0.8,
		FontWeight: "normal",
		FontStyle:  "normal",
		Align:      "center",
		VAlign:     "middle",
		LineHeight: 1,
	}
	return []Primitive{textPrim(0, 0, w, h, tb, fill)}
}

func projectPhoto(e models.Element, w, h float64, s models.Style) ([]Primitive, bool) {
	mask := e.MaskType
	if mask == "" {
		mask = models.MaskCircle
	}
	if !mask.Valid() {
		return nil, false
	}

	outline := maskPath(mask, w, h, s.Float(keyBorderRadius, 0))
	stroke, sw := border(s, "#ffffff")

	if e.Src == "" {
		out := []Primitive{{Kind: KindPath, Path: outline, Paint: Paint{Fill: color(s, keyBackground, "#e5e7eb"), Stroke: stroke, StrokeWidth: sw}}}
		// силуэт-заглушка
		sil := Paint{Fill: color(s, keyColor, "#9ca3af")}
		out = append(out,
			Primitive{Kind: KindEllipse, X: 0.35 * w, Y: 0.2 * h, Width: 0.3 * w, Height: 0.3 * h, Paint: sil},
			Primitive{Kind: KindPath, Path: silhouette(w, h), Clip: outline, Paint: sil},
		)
		return out, true
	}

	out := []Primitive{{Kind: KindImage, Width: w, Height: h, Href: e.Src, Clip: outline}}
	if stroke != "" {
		out = append(out, Primitive{Kind: KindPath, Path: outline, Paint: Paint{Stroke: stroke, StrokeWidth: sw}})
	}
	return out, true
}

func silhouette(w, h float64) Path {
	return Path{
		{Op: OpMove, Pts: []Point{{0.15 * w, h}}},
		{Op: OpCubic, Pts: []Point{{0.15 * w, 0.7 * h}, {0.3 * w, 0.55 * h}, {0.5 * w, 0.55 * h}}},
		{Op: OpCubic, Pts: []Point{{0.7 * w, 0.55 * h}, {0.85 * w, 0.7 * h}, {0.85 * w, h}}},
		{Op: OpClose},
	}
}

// Подпись и процент рисуются полосой над рамкой, трек занимает рамку целиком.
func projectProgress(e models.Element, w, h float64, s models.Style) []Primitive {
	radius := math.Min(s.Float(keyBorderRadius, 6), h/2)
	out := []Primitive{{Kind: KindRect, Width: w, Height: h, Radius: radius, Paint: Paint{Fill: color(s, keyBackground, "#e5e7eb")}}}

	if fw := w * clamp(e.Progress, 0, 100) / 100; fw > 0 {
		out = append(out, Primitive{Kind: KindRect, Width: fw, Height: h, Radius: math.Min(radius, fw/2), Paint: Paint{Fill: color(s, keyProgress, "#3b82f6")}})
	}

	size := s.Float(keyFontSize, 11)
	strip := size * defaultLineHeight
	labelColor := color(s, keyLabelColor, "#374151")

	if s.Bool(keyShowLabel, true) && e.Label != "" {
		tb := textBox(e.Label, s, 11, "left", "bottom")
		out = append(out, textPrim(0, -strip-2, w, strip, tb, labelColor))
	}
	if s.Bool(keyShowPercent, false) {
		tb := textBox(fmt.Sprintf("%d%%", int(math.Round(clamp(e.Progress, 0, 100)))), s, 11, "right", "bottom")
		out = append(out, textPrim(0, -strip-2, w, strip, tb, labelColor))
	}
	return out
}

func projectSection(e models.Element, w, h float64, s models.Style) []Primitive {
	var out []Primitive
	if box, ok := frame(w, h, s); ok {
		out = append(out, box)
	}

	if !e.ShowTitle || e.SectionTitle == "" {
		return out
	}

	pad := math.Max(0, s.Float(keyPadding, 12))
	tb := textBox(e.SectionTitle, s, 16, "left", "top")
	titleH := tb.FontSize * tb.LineHeight
	out = append(out, textPrim(pad, pad, w-2*pad, titleH, tb, color(s, keyColor, "#111827")))

	y := pad + titleH + 4
	out = append(out, Primitive{Kind: KindLine, X1: pad, Y1: y, X2: w - pad, Y2: y, Paint: Paint{
		Stroke:      color(s, keyBorderColor, "#e5e7eb"),
		StrokeWidth: 1,
	}})
	return out
}

func projectColumns(e models.Element, w, h float64, s models.Style) []Primitive {
	var out []Primitive
	if box, ok := frame(w, h, s); ok {
		out = append(out, box)
	}

	n := e.Columns
	if n < 1 {
		n = 1
	}
	gap := math.Max(0, e.Gap)
	colW := (w - gap*float64(n-1)) / float64(n)
	if colW <= 0 {
		return out
	}

	paint := Paint{Fill: color(s, keyColumnFill, "")}
	paint.Stroke, paint.StrokeWidth = border(s, "#e5e7eb")
	for i := 0; i < n; i++ {
		out = append(out, Primitive{Kind: KindRect, X: float64(i) * (colW + gap), Width: colW, Height: h, Paint: paint})
	}
	return out
}

func projectBanner(e models.Element, w, h float64, s models.Style) ([]Primitive, bool) {
	paint := Paint{Fill: color(s, keyBackground, "#1e3a8a")}

	var bg Primitive
	switch e.BannerType {
	case models.BannerSolid, "":
		bg = Primitive{Kind: KindRect, Width: w, Height: h, Paint: paint}
	case models.BannerAngled:
		bg = Primitive{Kind: KindPath, Path: polygon(Point{0, 0}, Point{w, 0}, Point{w, 0.75 * h}, Point{0, h}), Paint: paint}
	case models.BannerWave:
		bg = Primitive{Kind: KindPath, Paint: paint, Path: Path{
			{Op: OpMove, Pts: []Point{{0, 0}}},
			{Op: OpLine, Pts: []Point{{w, 0}}},
			{Op: OpLine, Pts: []Point{{w, 0.8 * h}}},
			{Op: OpCubic, Pts: []Point{{0.75 * w, h}, {0.25 * w, 0.6 * h}, {0, 0.8 * h}}},
			{Op: OpClose},
		}}
	case models.BannerRibbon:
		bg = Primitive{Kind: KindPath, Paint: paint, Path: polygon(
			Point{0, 0}, Point{w, 0}, Point{0.97 * w, h / 2}, Point{w, h},
			Point{0, h}, Point{0.03 * w, h / 2},
		)}
	default:
		return nil, false
	}

	pad := math.Max(0, s.Float(keyPadding, 20))
	tb := textBox(e.Content, s, 32, "center", "middle")
	return []Primitive{bg, textPrim(pad, pad, w-2*pad, h-2*pad, tb, color(s, keyColor, "#ffffff"))}, true
}

// ============================================================
// Helpers
// ============================================================

func orShape(t, def models.ShapeType) models.ShapeType {
	if t == "" {
		return def
	}
	return t
}

// color читает цвет; "transparent" и "none" означают отсутствие заливки.
func color(s models.Style, key, def string) string {
	v := s.String(key, def)
	if v == "transparent" || v == "none" {
		return ""
	}
	return v
}

func border(s models.Style, def string) (string, float64) {
	w := s.Float(keyBorderWidth, 0)
	if w <= 0 {
		return "", 0
	}
	return color(s, keyBorderColor, def), w
}

// frame: фон и рамка контейнера, если хоть что-то из них видно.
func frame(w, h float64, s models.Style) (Primitive, bool) {
	paint := Paint{Fill: color(s, keyBackground, "")}
	paint.Stroke, paint.StrokeWidth = border(s, "#e5e7eb")
	if paint.Fill == "" && paint.Stroke == "" {
		return Primitive{}, false
	}
	return Primitive{Kind: KindRect, Width: w, Height: h, Radius: math.Max(0, s.Float(keyBorderRadius, 0)), Paint: paint}, true
}

func textBox(content string, s models.Style, defSize float64, defAlign, valign string) TextBox {
	return TextBox{
		Content:    content,
		FontFamily: s.String(keyFontFamily, defaultFontFamily),
		FontSize:   math.Max(1, s.Float(keyFontSize, defSize)),
		FontWeight: s.String(keyFontWeight, "normal"),
		FontStyle:  s.String(keyFontStyle, "normal"),
		Align:      textAlign(s.String(keyTextAlign, defAlign)),
		VAlign:     valign,
		LineHeight: math.Max(0.5, s.Float(keyLineHeight, defaultLineHeight)),
	}
}

func textAlign(v string) string {
	switch v {
	case "center", "right":
		return v
	}
	return "left"
}

func textPrim(x, y, w, h float64, tb TextBox, fill string) Primitive {
	return Primitive{Kind: KindText, X: x, Y: y, Width: math.Max(0, w), Height: math.Max(0, h), Text: &tb, Paint: Paint{Fill: fill}}
}

func hline(x1, x2, y float64, paint Paint) Primitive {
	return Primitive{Kind: KindLine, X1: x1, Y1: y, X2: x2, Y2: y, Paint: paint}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
