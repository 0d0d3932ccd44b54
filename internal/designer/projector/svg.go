package projector

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"cv-designer/internal/designer/fonts"
)

// ============================================================
// Renderer
// ============================================================

// Renderer собирает SVG-документ страницы из проекций. Сетка, поля и рамки
// выделения сюда не попадают: это состояние холста, а не содержимое.
type Renderer struct {
	Background string
}

func NewRenderer() *Renderer {
	return &Renderer{Background: "#ffffff"}
}

// Render собирает SVG. Одинаковые проекции дают побайтно одинаковый результат.
func (r *Renderer) Render(page []Projection, width, height float64) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid page size %sx%s", formatFloat(width), formatFloat(height))
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	if href := fonts.StylesheetURL(Families(page)); href != "" {
		builder.WriteString(`  <defs><style>@import url('`)
		builder.WriteString(escape(href))
		builder.WriteString(`');</style></defs>` + "\n")
	}

	if r.Background != "" {
		builder.WriteString(fmt.Sprintf(`  <rect width="%s" height="%s" fill="%s" />`+"\n",
			formatFloat(width), formatFloat(height), escape(r.Background)))
	}

	for _, p := range page {
		r.renderProjection(&builder, p)
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// Families: семейства шрифтов, встречающиеся в текстовых примитивах.
func Families(page []Projection) []string {
	var out []string
	for _, p := range page {
		for _, prim := range p.Primitives {
			if prim.Text != nil {
				out = append(out, prim.Text.FontFamily)
			}
		}
	}
	return out
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderProjection(b *strings.Builder, p Projection) {
	b.WriteString(`  <g id="`)
	b.WriteString(escape(p.ID))
	b.WriteString(`" transform="translate(`)
	b.WriteString(formatFloat(p.X) + " " + formatFloat(p.Y) + ")")
	if p.Rotation != 0 {
		b.WriteString(fmt.Sprintf(" rotate(%s %s %s)", formatFloat(p.Rotation), formatFloat(p.Width/2), formatFloat(p.Height/2)))
	}
	b.WriteString(`"`)
	if p.Opacity < 1 {
		b.WriteString(` opacity="` + formatFloat(p.Opacity) + `"`)
	}
	b.WriteString(">\n")

	for i, prim := range p.Primitives {
		clip := ""
		if len(prim.Clip) > 0 {
			clip = fmt.Sprintf("%s-clip-%d", p.ID, i)
			b.WriteString(`    <clipPath id="` + escape(clip) + `"><path d="` + prim.Clip.String() + `" /></clipPath>` + "\n")
		}
		b.WriteString("    ")
		b.WriteString(renderPrimitive(prim, clip))
		b.WriteString("\n")
	}

	b.WriteString("  </g>\n")
}

func renderPrimitive(p Primitive, clip string) string {
	attrs := ""
	if clip != "" {
		attrs = ` clip-path="url(#` + escape(clip) + `)"`
	}

	switch p.Kind {
	case KindRect:
		radius := ""
		if r := math.Min(p.Radius, math.Min(p.Width, p.Height)/2); r > 0 {
			radius = fmt.Sprintf(` rx="%s" ry="%s"`, formatFloat(r), formatFloat(r))
		}
		return fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s"%s%s%s />`,
			formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Width), formatFloat(p.Height), radius, paintAttrs(p.Paint), attrs)

	case KindEllipse:
		return fmt.Sprintf(`<ellipse cx="%s" cy="%s" rx="%s" ry="%s"%s%s />`,
			formatFloat(p.X+p.Width/2), formatFloat(p.Y+p.Height/2), formatFloat(p.Width/2), formatFloat(p.Height/2), paintAttrs(p.Paint), attrs)

	case KindPath:
		return fmt.Sprintf(`<path d="%s"%s%s />`, p.Path.String(), paintAttrs(p.Paint), attrs)

	case KindLine:
		return fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s"%s%s />`,
			formatFloat(p.X1), formatFloat(p.Y1), formatFloat(p.X2), formatFloat(p.Y2), paintAttrs(p.Paint), attrs)

	case KindImage:
		return fmt.Sprintf(`<image href="%s" x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid slice"%s />`,
			escape(p.Href), formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Width), formatFloat(p.Height), attrs)

	case KindText:
		return renderText(p, attrs)
	}
	return ""
}

func renderText(p Primitive, attrs string) string {
	lines := p.Lines()
	if len(lines) == 0 {
		return "<!-- empty text -->"
	}
	t := p.Text

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<text font-family="%s" font-size="%s" font-weight="%s" font-style="%s" fill="%s" text-anchor="%s"%s>`,
		escape(t.FontFamily), formatFloat(t.FontSize), escape(t.FontWeight), escape(t.FontStyle),
		escape(orNone(p.Fill)), lines[0].Anchor, attrs))
	for _, l := range lines {
		b.WriteString(`<tspan x="` + formatFloat(l.X) + `" y="` + formatFloat(l.Baseline) + `">`)
		b.WriteString(escape(l.Text))
		b.WriteString(`</tspan>`)
	}
	b.WriteString(`</text>`)
	return b.String()
}

func paintAttrs(p Paint) string {
	var b strings.Builder
	b.WriteString(` fill="` + escape(orNone(p.Fill)) + `"`)
	if p.Stroke == "" || p.StrokeWidth <= 0 {
		return b.String()
	}
	b.WriteString(` stroke="` + escape(p.Stroke) + `" stroke-width="` + formatFloat(p.StrokeWidth) + `"`)
	if len(p.Dash) > 0 {
		dash := make([]string, len(p.Dash))
		for i, d := range p.Dash {
			dash[i] = formatFloat(d)
		}
		b.WriteString(` stroke-dasharray="` + strings.Join(dash, " ") + `"`)
	}
	if p.LineCap != "" {
		b.WriteString(` stroke-linecap="` + escape(p.LineCap) + `"`)
	}
	return b.String()
}

// ============================================================
// Formatting helpers
// ============================================================

func orNone(c string) string {
	if c == "" {
		return "none"
	}
	return c
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// formatFloat округляет до тысячных, чтобы вывод не зависел от шума вычислений.
func formatFloat(val float64) string {
	val = math.Round(val*1000) / 1000
	if val == 0 {
		val = 0
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}
