package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"cv-designer/internal/designer/fonts"
	"cv-designer/internal/designer/projector"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	// BaseDPI: плотность, в которой заданы координаты документа.
	BaseDPI = 96.0
	// MaxPixels ограничивает размер холста (около 36 Мп, A4 при 600 dpi).
	MaxPixels = 6000 * 6000
)

// ============================================================
// Renderer
// ============================================================

type Options struct {
	DPI        float64
	Background string
}

// Renderer рисует проекции страницы в RGBA. Раскладка текста и геометрия
// берутся из тех же примитивов, что и SVG.
type Renderer struct {
	fonts *fonts.Cache
}

// NewRenderer с nil берёт общий кэш шрифтов процесса.
func NewRenderer(cache *fonts.Cache) *Renderer {
	if cache == nil {
		cache = fonts.Default
	}
	return &Renderer{fonts: cache}
}

func (r *Renderer) Render(page []projector.Projection, width, height float64, opts Options) (*image.RGBA, error) {
	if !finite(width) || !finite(height) || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid page size %vx%v", width, height)
	}
	dpi := opts.DPI
	if !finite(dpi) || dpi <= 0 {
		dpi = BaseDPI
	}
	scale := dpi / BaseDPI

	fw, fh := math.Ceil(width*scale), math.Ceil(height*scale)
	if fw > MaxPixels || fh > MaxPixels || fw*fh > MaxPixels {
		return nil, fmt.Errorf("image too large: %vx%v", fw, fh)
	}
	w, h := int(fw), int(fh)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := opts.Background
	if bg == "" {
		bg = "#ffffff"
	}
	if c, ok := ParseColor(bg); ok {
		draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	}

	for _, p := range page {
		r.drawProjection(img, p, scale)
	}
	return img, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// EncodePNG пишет изображение в PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (r *Renderer) drawProjection(dst *image.RGBA, p projector.Projection, scale float64) {
	if p.Opacity <= 0 {
		return
	}
	m := projectionTransform(p, scale)

	target := dst
	if p.Opacity < 1 {
		target = image.NewRGBA(dst.Bounds())
	}

	for _, prim := range p.Primitives {
		r.drawPrimitive(target, prim, m, scale)
	}

	if target != dst {
		alpha := image.NewUniform(color.Alpha{A: uint8(p.Opacity*255 + 0.5)})
		draw.DrawMask(dst, dst.Bounds(), target, image.Point{}, alpha, image.Point{}, draw.Over)
	}
}

func (r *Renderer) drawPrimitive(dst *image.RGBA, prim projector.Primitive, m affine, scale float64) {
	target := dst
	if len(prim.Clip) > 0 {
		target = image.NewRGBA(dst.Bounds())
	}

	switch prim.Kind {
	case projector.KindRect, projector.KindEllipse, projector.KindPath:
		outline := prim.Outline()
		fillPath(target, outline, m, prim.Fill)
		strokePath(target, outline, m, prim.Paint, scale)
	case projector.KindLine:
		line := projector.Path{
			{Op: projector.OpMove, Pts: []projector.Point{{X: prim.X1, Y: prim.Y1}}},
			{Op: projector.OpLine, Pts: []projector.Point{{X: prim.X2, Y: prim.Y2}}},
		}
		strokePath(target, line, m, prim.Paint, scale)
	case projector.KindText:
		r.drawText(target, prim, m, scale)
	case projector.KindImage:
		// внешние изображения не загружаются, остаётся подложка маски
	}

	if target != dst {
		mask := clipMask(prim.Clip, m, dst.Bounds())
		draw.DrawMask(dst, dst.Bounds(), target, image.Point{}, mask, image.Point{}, draw.Over)
	}
}

// ============================================================
// Fill & stroke
// ============================================================

func fillPath(dst *image.RGBA, path projector.Path, m affine, fill string) {
	c, ok := ParseColor(fill)
	if !ok || len(path) == 0 {
		return
	}
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(c)
	addPath(filler, path, m)
	filler.Draw()
}

func strokePath(dst *image.RGBA, path projector.Path, m affine, p projector.Paint, scale float64) {
	c, ok := ParseColor(p.Stroke)
	if !ok || p.StrokeWidth <= 0 || len(path) == 0 {
		return
	}
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)

	width := toFixed(p.StrokeWidth * scale)
	miter := toFixed(4)
	capFn := lineCap(p.LineCap)

	if len(p.Dash) > 0 {
		dash := make([]float64, len(p.Dash))
		for i, d := range p.Dash {
			dash[i] = d * scale
		}
		dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
		dasher.SetStroke(width, miter, capFn, capFn, rasterx.RoundGap, rasterx.Miter, dash, 0)
		dasher.SetColor(c)
		addPath(dasher, path, m)
		dasher.Draw()
		return
	}

	stroker := rasterx.NewStroker(b.Dx(), b.Dy(), scanner)
	stroker.SetStroke(width, miter, capFn, capFn, rasterx.RoundGap, rasterx.Miter)
	stroker.SetColor(c)
	addPath(stroker, path, m)
	stroker.Draw()
}

func lineCap(name string) rasterx.CapFunc {
	switch name {
	case "round":
		return rasterx.RoundCap
	case "square":
		return rasterx.SquareCap
	}
	return rasterx.ButtCap
}

// addPath переводит путь в команды растеризатора с учётом преобразования.
func addPath(a rasterx.Adder, path projector.Path, m affine) {
	open := false
	for _, s := range path {
		switch s.Op {
		case projector.OpMove:
			if open {
				a.Stop(false)
			}
			a.Start(m.fixed(s.Pts[0]))
			open = true
		case projector.OpLine:
			a.Line(m.fixed(s.Pts[0]))
		case projector.OpCubic:
			a.CubeBezier(m.fixed(s.Pts[0]), m.fixed(s.Pts[1]), m.fixed(s.Pts[2]))
		case projector.OpClose:
			a.Stop(true)
			open = false
		}
	}
	if open {
		a.Stop(false)
	}
}

// clipMask растеризует контур обрезки в альфа-маску.
func clipMask(path projector.Path, m affine, b image.Rectangle) *image.Alpha {
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, s := range path {
		switch s.Op {
		case projector.OpMove:
			x, y := m.apply(s.Pts[0])
			z.MoveTo(float32(x), float32(y))
		case projector.OpLine:
			x, y := m.apply(s.Pts[0])
			z.LineTo(float32(x), float32(y))
		case projector.OpCubic:
			bx, by := m.apply(s.Pts[0])
			cx, cy := m.apply(s.Pts[1])
			dx, dy := m.apply(s.Pts[2])
			z.CubeTo(float32(bx), float32(by), float32(cx), float32(cy), float32(dx), float32(dy))
		case projector.OpClose:
			z.ClosePath()
		}
	}

	mask := image.NewAlpha(b)
	z.Draw(mask, b, image.Opaque, image.Point{})
	return mask
}

// ============================================================
// Text
// ============================================================

// drawText рисует строки без поворота глифов: вращается только точка привязки.
func (r *Renderer) drawText(dst *image.RGBA, prim projector.Primitive, m affine, scale float64) {
	lines := prim.Lines()
	c, ok := ParseColor(prim.Fill)
	if len(lines) == 0 || !ok || prim.Text.FontSize <= 0 {
		return
	}
	t := prim.Text

	r.fonts.Use(t.FontFamily, t.Bold(), t.Italic(), t.FontSize*scale, func(face font.Face) {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
		for _, l := range lines {
			x, y := m.apply(projector.Point{X: l.X, Y: l.Baseline})
			dot := fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
			switch l.Anchor {
			case projector.AnchorMiddle:
				dot.X -= d.MeasureString(l.Text) / 2
			case projector.AnchorEnd:
				dot.X -= d.MeasureString(l.Text)
			}
			d.Dot = dot
			d.DrawString(l.Text)
		}
	})
}

// ============================================================
// Transform
// ============================================================

// affine: x' = a*x + c*y + e, y' = b*x + d*y + f.
type affine struct {
	a, b, c, d, e, f float64
}

// projectionTransform: поворот вокруг центра рамки, перенос в координаты
// страницы и масштаб под dpi.
func projectionTransform(p projector.Projection, scale float64) affine {
	rad := p.Rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	cx, cy := p.Width/2, p.Height/2
	return affine{
		a: scale * cos,
		b: scale * sin,
		c: -scale * sin,
		d: scale * cos,
		e: scale * (p.X + cx - cos*cx + sin*cy),
		f: scale * (p.Y + cy - sin*cx - cos*cy),
	}
}

func (m affine) apply(p projector.Point) (float64, float64) {
	return m.a*p.X + m.c*p.Y + m.e, m.b*p.X + m.d*p.Y + m.f
}

func (m affine) fixed(p projector.Point) fixed.Point26_6 {
	x, y := m.apply(p)
	return fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// Families: семейства, уже встречавшиеся рендеру.
func (r *Renderer) Families() []string {
	return r.fonts.Families()
}
