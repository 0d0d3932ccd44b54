package projector

import (
	"strings"
	"testing"

	"cv-designer/internal/designer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func element(t *testing.T, typ models.ElementType, id string, x, y, w, h float64) models.Element {
	t.Helper()
	e, ok := models.DefaultElement(typ)
	require.True(t, ok)
	e.ID = id
	e.X, e.Y, e.Width, e.Height = x, y, w, h
	return e
}

// ============================================================
// Project
// ============================================================

func TestProject_Deterministic(t *testing.T) {
	e := element(t, models.TypeAdvancedShape, "a", 10, 20, 100, 100)

	first, ok := Project(e)
	require.True(t, ok)
	second, _ := Project(e.Clone())

	assert.Equal(t, first, second)
}

func TestProject_UnknownStyleKeysIgnored(t *testing.T) {
	plain := element(t, models.TypeText, "a", 0, 0, 200, 40)
	extra := plain.Clone()
	extra.Style["x-editor-hint"] = "hover"
	extra.Style["selectedOutline"] = "#ff0000"

	p1, _ := Project(plain)
	p2, _ := Project(extra)
	assert.Equal(t, p1, p2)

	r := NewRenderer()
	s1, err := r.Render([]Projection{p1}, 794, 1123)
	require.NoError(t, err)
	s2, err := r.Render([]Projection{p2}, 794, 1123)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestProject_UnknownTypeProjectsNothing(t *testing.T) {
	_, ok := Project(models.Element{ID: "x", Type: "hologram", Width: 10, Height: 10})
	assert.False(t, ok)

	e := element(t, models.TypeShape, "s", 0, 0, 10, 10)
	e.ShapeType = "trapezoid"
	_, ok = Project(e)
	assert.False(t, ok)

	e.ShapeType = ""
	p, ok := Project(e)
	require.True(t, ok)
	assert.Equal(t, KindRect, p.Primitives[0].Kind)
}

func TestProject_EveryTypeHasProjection(t *testing.T) {
	for _, typ := range models.ElementTypes {
		e := element(t, typ, "e", 0, 0, 120, 80)
		p, ok := Project(e)
		assert.True(t, ok, string(typ))
		assert.NotEmpty(t, p.Primitives, string(typ))
	}
}

func TestProject_EveryShapeVariant(t *testing.T) {
	for _, st := range []models.ShapeType{
		models.ShapeRectangle, models.ShapeCircle, models.ShapeEllipse, models.ShapeTriangle,
		models.ShapeDiamond, models.ShapePentagon, models.ShapeHexagon, models.ShapeOctagon,
		models.ShapeStar, models.ShapeHeart, models.ShapeArrowRight, models.ShapeArrowLeft,
		models.ShapeArrowUp, models.ShapeArrowDown, models.ShapeChevron, models.ShapeBadge,
		models.ShapeShield, models.ShapeBookmark, models.ShapeFlag, models.ShapeBurst,
	} {
		e := element(t, models.TypeShape, "s", 0, 0, 100, 60)
		e.ShapeType = st
		p, ok := Project(e)
		require.True(t, ok, string(st))
		require.Len(t, p.Primitives, 1)

		outline := p.Primitives[0].Outline()
		require.NotEmpty(t, outline, string(st))
		assert.Equal(t, OpClose, outline[len(outline)-1].Op, string(st))
	}
}

func TestProject_StyleAndFrame(t *testing.T) {
	e := element(t, models.TypeShape, "s", 5, 6, 100, 50)
	e.Rotation = 45
	e.Style = models.Style{"backgroundColor": "#111111", "borderWidth": 2.0, "borderColor": "#222222", "opacity": 0.5}

	p, ok := Project(e)
	require.True(t, ok)

	assert.Equal(t, 5.0, p.X)
	assert.Equal(t, 45.0, p.Rotation)
	assert.Equal(t, 0.5, p.Opacity)
	assert.Equal(t, "#111111", p.Primitives[0].Fill)
	assert.Equal(t, "#222222", p.Primitives[0].Stroke)
	assert.Equal(t, 2.0, p.Primitives[0].StrokeWidth)
}

func TestProject_ProgressBar(t *testing.T) {
	e := element(t, models.TypeProgressBar, "p", 0, 0, 200, 12)
	e.Style["showPercentage"] = true

	p, ok := Project(e)
	require.True(t, ok)
	require.Len(t, p.Primitives, 4)

	assert.Equal(t, 200.0, p.Primitives[0].Width)
	assert.Equal(t, 150.0, p.Primitives[1].Width)
	assert.Equal(t, "Skill", p.Primitives[2].Text.Content)
	assert.Equal(t, "75%", p.Primitives[3].Text.Content)

	e.Progress = 0
	e.Style["showLabel"] = false
	e.Style["showPercentage"] = false
	p, _ = Project(e)
	assert.Len(t, p.Primitives, 1, "empty progress has only the track")
}

func TestProject_Columns(t *testing.T) {
	e := element(t, models.TypeColumns, "c", 0, 0, 500, 200)

	p, ok := Project(e)
	require.True(t, ok)
	require.Len(t, p.Primitives, 2)
	assert.Equal(t, 240.0, p.Primitives[0].Width)
	assert.Equal(t, 260.0, p.Primitives[1].X)
}

func TestProject_Section(t *testing.T) {
	e := element(t, models.TypeSection, "s", 0, 0, 500, 200)
	e.SectionTitle = "Experience"

	p, _ := Project(e)
	require.Len(t, p.Primitives, 2)
	assert.Equal(t, "Experience", p.Primitives[0].Text.Content)
	assert.Equal(t, KindLine, p.Primitives[1].Kind)

	e.ShowTitle = false
	p, _ = Project(e)
	assert.Empty(t, p.Primitives)
}

func TestProject_Dividers(t *testing.T) {
	cases := map[models.DividerType]int{
		models.DividerSolid:  1,
		models.DividerDashed: 1,
		models.DividerDotted: 1,
		models.DividerDouble: 2,
		models.DividerWave:   1,
	}
	for dt, n := range cases {
		e := element(t, models.TypeDivider, "d", 0, 0, 400, 20)
		e.DividerType = dt
		p, ok := Project(e)
		require.True(t, ok, string(dt))
		assert.Len(t, p.Primitives, n, string(dt))
	}

	e := element(t, models.TypeDivider, "d", 0, 0, 400, 20)
	e.DividerType = models.DividerDashed
	p, _ := Project(e)
	assert.Equal(t, []float64{4, 3}, p.Primitives[0].Dash)
}

func TestProject_Icons(t *testing.T) {
	e := element(t, models.TypeIcon, "i", 0, 0, 32, 32)

	p, _ := Project(e)
	assert.Equal(t, KindPath, p.Primitives[0].Kind, "star icon reuses the star outline")

	e.IconName = "email"
	p, _ = Project(e)
	assert.Equal(t, "✉", p.Primitives[0].Text.Content)

	e.IconName = "unknown-thing"
	p, _ = Project(e)
	assert.Equal(t, fallbackGlyph, p.Primitives[0].Text.Content)
}

func TestProject_Photo(t *testing.T) {
	e := element(t, models.TypePhotoPlaceholder, "ph", 0, 0, 120, 120)

	p, _ := Project(e)
	require.NotEmpty(t, p.Primitives)
	assert.Equal(t, KindPath, p.Primitives[0].Kind)

	e.Src = "https://example.com/me.png"
	e.MaskType = models.MaskHexagon
	p, _ = Project(e)
	assert.Equal(t, KindImage, p.Primitives[0].Kind)
	assert.Len(t, p.Primitives[0].Clip.Vertices(), 6)

	e.MaskType = "blob"
	_, ok := Project(e)
	assert.False(t, ok)
}

func TestProject_BannerVariants(t *testing.T) {
	for _, bt := range []models.BannerType{models.BannerSolid, models.BannerAngled, models.BannerWave, models.BannerRibbon} {
		e := element(t, models.TypeBanner, "b", 0, 0, 794, 120)
		e.BannerType = bt
		p, ok := Project(e)
		require.True(t, ok, string(bt))
		require.Len(t, p.Primitives, 2)
		assert.Equal(t, "Your Name", p.Primitives[1].Text.Content)
	}
}

// ============================================================
// Page
// ============================================================

func TestProjectPage_OrderAndZeroArea(t *testing.T) {
	top := element(t, models.TypeShape, "top", 0, 0, 10, 10)
	top.ZIndex = 5
	bottom := element(t, models.TypeShape, "bottom", 0, 0, 10, 10)
	bottom.ZIndex = -1
	empty := element(t, models.TypeShape, "empty", 0, 0, 0, 10)
	unknown := models.Element{ID: "u", Type: "hologram", Width: 5, Height: 5}

	page := ProjectPage([]models.Element{top, empty, bottom, unknown})

	require.Len(t, page, 2)
	assert.Equal(t, "bottom", page[0].ID)
	assert.Equal(t, "top", page[1].ID)
}

// ============================================================
// Shapes
// ============================================================

func TestShapePath_Star(t *testing.T) {
	path, ok := ShapePath(models.ShapeStar, 100, 100)
	require.True(t, ok)

	v := path.Vertices()
	require.Len(t, v, 10)

	assert.InDelta(t, 50, v[0].X, 1e-9)
	assert.InDelta(t, 0, v[0].Y, 1e-9)
	assert.InDelta(t, 61.7557, v[1].X, 1e-3)
	assert.InDelta(t, 33.8197, v[1].Y, 1e-3)
	assert.InDelta(t, 79.3893, v[4].X, 1e-3)
	assert.InDelta(t, 90.4508, v[4].Y, 1e-3)
	assert.InDelta(t, 50, v[5].X, 1e-9)
	assert.InDelta(t, 70, v[5].Y, 1e-9)
}

func TestShapePath_StarUsesShortSide(t *testing.T) {
	path, _ := ShapePath(models.ShapeStar, 200, 100)
	v := path.Vertices()

	assert.InDelta(t, 100, v[0].X, 1e-9)
	assert.InDelta(t, 0, v[0].Y, 1e-9)
}

func TestShapePath_Polygons(t *testing.T) {
	for st, n := range map[models.ShapeType]int{
		models.ShapeTriangle: 3,
		models.ShapeDiamond:  4,
		models.ShapePentagon: 5,
		models.ShapeHexagon:  6,
		models.ShapeOctagon:  8,
		models.ShapeBurst:    24,
		models.ShapeBadge:    32,
	} {
		path, ok := ShapePath(st, 100, 80)
		require.True(t, ok, string(st))
		assert.Len(t, path.Vertices(), n, string(st))
	}

	arrow, _ := ShapePath(models.ShapeArrowLeft, 100, 40)
	assert.Equal(t, Point{0, 20}, arrow.Vertices()[3], "left arrow tip")
}

func TestShapePath_NonGeometric(t *testing.T) {
	_, ok := ShapePath(models.ShapeRectangle, 10, 10)
	assert.False(t, ok)
}

func TestPathString(t *testing.T) {
	p := polygon(Point{0, 0}, Point{10, 0}, Point{5, 8.66666})
	assert.Equal(t, "M 0 0 L 10 0 L 5 8.667 Z", p.String())
}

// ============================================================
// Text layout
// ============================================================

func TestLines(t *testing.T) {
	tb := TextBox{Content: "Jane\nDoe", FontSize: 14, LineHeight: 1.4, Align: "center", VAlign: "top"}
	p := textPrim(0, 0, 200, 40, tb, "#000")

	lines := p.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, AnchorMiddle, lines[0].Anchor)
	assert.Equal(t, 100.0, lines[0].X)
	assert.InDelta(t, 14.7, lines[0].Baseline, 1e-9)
	assert.InDelta(t, 34.3, lines[1].Baseline, 1e-9)
}

func TestLines_MiddleAndRight(t *testing.T) {
	tb := TextBox{Content: "A", FontSize: 10, LineHeight: 1, Align: "right", VAlign: "middle"}
	p := textPrim(0, 0, 50, 30, tb, "#000")

	lines := p.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, AnchorEnd, lines[0].Anchor)
	assert.Equal(t, 50.0, lines[0].X)
	assert.InDelta(t, 18.5, lines[0].Baseline, 1e-9)
}

// ============================================================
// SVG
// ============================================================

func TestRender_Document(t *testing.T) {
	text := element(t, models.TypeText, "t1", 10, 20, 200, 40)
	text.Content = "Tom & <Jerry>"
	text.Rotation = 90

	svg, err := NewRenderer().Render(ProjectPage([]models.Element{text}), 794, 1123)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, svg, `viewBox="0 0 794 1123"`)
	assert.Contains(t, svg, `<g id="t1" transform="translate(10 20) rotate(90 100 20)">`)
	assert.Contains(t, svg, "Tom &amp; &lt;Jerry&gt;")
	assert.Contains(t, svg, "@import url('https://fonts.googleapis.com/css2?family=Inter:")
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestRender_ClipAndDash(t *testing.T) {
	photo := element(t, models.TypePhotoPlaceholder, "ph", 0, 0, 100, 100)
	photo.Src = "me.png"
	divider := element(t, models.TypeDivider, "d", 0, 200, 400, 20)
	divider.DividerType = models.DividerDashed

	svg, err := NewRenderer().Render(ProjectPage([]models.Element{photo, divider}), 794, 1123)
	require.NoError(t, err)

	assert.Contains(t, svg, `<clipPath id="ph-clip-0">`)
	assert.Contains(t, svg, `clip-path="url(#ph-clip-0)"`)
	assert.Contains(t, svg, `stroke-dasharray="4 3"`)
	assert.NotContains(t, svg, "@import", "no text, no fonts")
}

func TestRender_InvalidSize(t *testing.T) {
	_, err := NewRenderer().Render(nil, 0, 100)
	assert.Error(t, err)
}
