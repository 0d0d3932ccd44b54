package controller

import (
	"testing"

	"cv-designer/internal/designer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Align / distribute
// ============================================================

func TestAlign_SingleElementUsesCanvas(t *testing.T) {
	c := newTestController(t)
	id := addText(t, c, 13, 40, 200, 40)

	require.True(t, c.AlignCenter())
	e, _ := c.Element(id)
	assert.Equal(t, 297.0, e.X)
	assert.Equal(t, 40.0, e.Y)

	require.True(t, c.AlignBottom())
	e, _ = c.Element(id)
	assert.Equal(t, 1083.0, e.Y)
}

func TestAlign_MultipleElementsUseSelectionBounds(t *testing.T) {
	c := newTestController(t)
	a := addText(t, c, 50, 10, 100, 20)
	b := addText(t, c, 120, 60, 40, 20)
	c.SelectAll()
	entries := c.HistoryLen()

	require.True(t, c.AlignRight())

	ea, _ := c.Element(a)
	eb, _ := c.Element(b)
	assert.Equal(t, 60.0, ea.X)
	assert.Equal(t, 120.0, eb.X)
	assert.Equal(t, entries+1, c.HistoryLen(), "all moves are one history step")
}

func TestAlign_Idempotent(t *testing.T) {
	c := newTestController(t)
	addText(t, c, 50, 10, 100, 20)
	addText(t, c, 120, 60, 40, 20)
	c.SelectAll()

	require.True(t, c.AlignLeft())
	after := c.Document()
	entries := c.HistoryLen()

	assert.False(t, c.AlignLeft())
	assert.Equal(t, after, c.Document())
	assert.Equal(t, entries, c.HistoryLen())
}

func TestAlign_RequiresSelection(t *testing.T) {
	c := newTestController(t)
	addText(t, c, 50, 10, 100, 20)
	c.ClearSelection()

	assert.False(t, c.CanAlign())
	assert.False(t, c.AlignTop())
	assert.False(t, c.Align(Alignment("diagonal")))
}

func TestDistribute_FewerThanThreeIsNoop(t *testing.T) {
	c := newTestController(t)
	addText(t, c, 0, 0, 10, 10)
	addText(t, c, 100, 0, 10, 10)
	c.SelectAll()
	before := c.Document()

	assert.False(t, c.CanDistribute())
	assert.False(t, c.DistributeHorizontally())
	assert.Equal(t, before, c.Document())
}

func TestDistribute_EqualGaps(t *testing.T) {
	c := newTestController(t)
	a := addText(t, c, 0, 0, 10, 10)
	// порядок выделения не совпадает с порядком по оси
	far := addText(t, c, 100, 5, 10, 10)
	mid := addText(t, c, 30, 9, 20, 10)
	c.SelectAll()

	require.True(t, c.DistributeHorizontally())

	ea, _ := c.Element(a)
	em, _ := c.Element(mid)
	ef, _ := c.Element(far)
	assert.Equal(t, 0.0, ea.X)
	assert.InDelta(t, 45.0, em.X, 1e-9)
	assert.InDelta(t, 100.0, ef.X, 1e-9)
	assert.InDelta(t, em.X-ea.Right(), ef.X-em.Right(), 1e-9)
	assert.Equal(t, 9.0, em.Y, "distribution only changes the chosen axis")
}

func TestDistribute_Vertical(t *testing.T) {
	c := newTestController(t)
	top := addText(t, c, 0, 0, 10, 10)
	mid := addText(t, c, 0, 12, 10, 30)
	bottom := addText(t, c, 0, 90, 10, 10)
	c.SelectAll()

	require.True(t, c.DistributeVertically())

	et, _ := c.Element(top)
	em, _ := c.Element(mid)
	eb, _ := c.Element(bottom)
	assert.InDelta(t, em.Y-et.Bottom(), eb.Y-em.Bottom(), 1e-9)
	assert.Equal(t, 90.0, eb.Y)
}

// ============================================================
// Layering
// ============================================================

func TestBringForward_SwapsWithNeighbour(t *testing.T) {
	c := newTestController(t)
	a := addText(t, c, 0, 0, 10, 10)
	b := addText(t, c, 0, 0, 10, 10)

	require.True(t, c.BringForward(a))

	page := c.CurrentPage()
	ea, _ := c.Element(a)
	eb, _ := c.Element(b)
	assert.Equal(t, 1, ea.ZIndex)
	assert.Equal(t, 0, eb.ZIndex)
	assert.Equal(t, []int{1, 0}, models.PaintOrder(page.Elements))

	assert.False(t, c.BringForward(a), "already on top")
	require.True(t, c.SendBackward(a))
	assert.Equal(t, []int{0, 1}, models.PaintOrder(c.CurrentPage().Elements))
}

func TestBringForward_EqualZIndexRenumbers(t *testing.T) {
	c := newTestController(t)
	c.LoadTemplate([]models.Element{
		{ID: "a", Type: models.TypeShape, Width: 10, Height: 10},
		{ID: "b", Type: models.TypeShape, Width: 10, Height: 10},
		{ID: "c", Type: models.TypeShape, Width: 10, Height: 10},
	}, true)

	require.True(t, c.BringForward("a"))

	page := c.CurrentPage()
	var order []string
	for _, i := range models.PaintOrder(page.Elements) {
		order = append(order, page.Elements[i].ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, order)
}

func TestBringToFrontAndSendToBack(t *testing.T) {
	c := newTestController(t)
	a := addText(t, c, 0, 0, 10, 10)
	addText(t, c, 0, 0, 10, 10)
	top := addText(t, c, 0, 0, 10, 10)

	assert.False(t, c.BringToFront(top))
	require.True(t, c.BringToFront(a))
	ea, _ := c.Element(a)
	assert.Equal(t, 3, ea.ZIndex)

	require.True(t, c.SendToBack(a))
	ea, _ = c.Element(a)
	assert.Equal(t, 0, ea.ZIndex)

	require.True(t, c.SetZIndex(a, 42))
	assert.False(t, c.SetZIndex(a, 42))
	assert.False(t, c.SetZIndex("missing", 1))
}

// ============================================================
// Pages
// ============================================================

func TestDeletePage_LastPageIsProtected(t *testing.T) {
	c := newTestController(t)

	assert.False(t, c.DeletePage(0))
	assert.Equal(t, 1, c.PageCount())
	assert.Equal(t, 1, c.HistoryLen())
}

func TestPages_AddDeleteNavigate(t *testing.T) {
	c := newTestController(t)
	addText(t, c, 0, 0, 10, 10)

	assert.Equal(t, 1, c.AddPage())
	assert.Equal(t, 1, c.CurrentPageIndex())
	assert.Empty(t, c.CurrentPage().Elements)

	entries := c.HistoryLen()
	require.True(t, c.GoToPage(0))
	assert.Equal(t, entries, c.HistoryLen(), "navigation is not a history step")
	assert.Len(t, c.CurrentPage().Elements, 1)
	assert.False(t, c.GoToPage(5))

	require.True(t, c.DeletePage(0))
	assert.Equal(t, 1, c.PageCount())
	assert.Equal(t, 0, c.CurrentPageIndex())
	assert.Empty(t, c.CurrentPage().Elements)
}

func TestDeletePage_BeforeCurrentShiftsIndex(t *testing.T) {
	c := newTestController(t)
	c.AddPage()
	c.AddPage()
	currentID := c.Document().Pages[2].ID

	require.True(t, c.DeletePage(0))

	assert.Equal(t, 1, c.CurrentPageIndex())
	assert.Equal(t, currentID, c.Document().Pages[1].ID)
}

func TestDuplicatePage_FreshIDs(t *testing.T) {
	c := newTestController(t)
	a := addText(t, c, 0, 0, 10, 10)

	at, ok := c.DuplicatePage(0)
	require.True(t, ok)
	assert.Equal(t, 1, at)

	doc := c.Document()
	require.Len(t, doc.Pages, 2)
	assert.NotEqual(t, doc.Pages[0].ID, doc.Pages[1].ID)
	require.Len(t, doc.Pages[1].Elements, 1)
	assert.NotEqual(t, a, doc.Pages[1].Elements[0].ID)
	assert.Equal(t, doc.Pages[0].Elements[0].X, doc.Pages[1].Elements[0].X)
}

func TestMovePage_KeepsCurrentPage(t *testing.T) {
	c := newTestController(t)
	firstID := c.Document().Pages[0].ID
	c.AddPage()
	c.AddPage()
	c.GoToPage(0)

	require.True(t, c.MovePage(0, 2))

	doc := c.Document()
	assert.Equal(t, firstID, doc.Pages[2].ID)
	assert.Equal(t, 2, c.CurrentPageIndex())
	assert.False(t, c.MovePage(0, 0))
	assert.False(t, c.MovePage(0, 9))
}

func TestClearPage(t *testing.T) {
	c := newTestController(t)
	addText(t, c, 0, 0, 10, 10)

	require.True(t, c.ClearPage())
	assert.Empty(t, c.CurrentPage().Elements)
	assert.Empty(t, c.SelectedIDs())
	assert.False(t, c.ClearPage())
}

// ============================================================
// Gestures
// ============================================================

func TestMoveElement_SnapsToSiblingLeftEdge(t *testing.T) {
	c := newTestController(t)
	addText(t, c, 100, 100, 200, 50)
	second := addText(t, c, 100, 160, 200, 50)
	entries := c.HistoryLen()

	res, ok := c.MoveElement(second, 102, 160)
	require.True(t, ok)

	e, _ := c.Element(second)
	assert.Equal(t, 100.0, e.X)
	assert.Equal(t, 160.0, e.Y)
	require.NotNil(t, res.SnapPositions.X)
	assert.Nil(t, res.SnapPositions.Y)
	var lines []float64
	for _, g := range res.Vertical() {
		lines = append(lines, g.Position)
	}
	assert.Equal(t, []float64{100, 300, 200}, lines)
	assert.Equal(t, entries, c.HistoryLen())

	require.True(t, c.EndGesture())
	assert.Equal(t, entries+1, c.HistoryLen())
	assert.False(t, c.EndGesture())
}

func TestMoveElement_SnapDisabled(t *testing.T) {
	c := newTestController(t)
	addText(t, c, 100, 100, 200, 50)
	second := addText(t, c, 100, 160, 200, 50)
	c.SetSnapToGuides(false)

	res, ok := c.MoveElement(second, 102, 160)
	require.True(t, ok)

	e, _ := c.Element(second)
	assert.Equal(t, 102.0, e.X)
	assert.Empty(t, res.Guides)
}

func TestMoveElement_CarriesSelection(t *testing.T) {
	c := newTestController(t)
	a := addText(t, c, 300, 300, 50, 50)
	b := addText(t, c, 500, 500, 50, 50)
	c.SelectAll()
	c.SetSnapToGuides(false)

	c.MoveElement(a, 310, 320)

	eb, _ := c.Element(b)
	assert.Equal(t, 510.0, eb.X)
	assert.Equal(t, 520.0, eb.Y)
}

func TestResizeElement_CommitsOnEndGesture(t *testing.T) {
	c := newTestController(t)
	id := addText(t, c, 0, 0, 100, 20)

	c.ResizeElement(id, 0, 0, 0, 20)
	e, _ := c.Element(id)
	assert.Equal(t, 0.0, e.Width)

	require.True(t, c.EndGesture())
	e, _ = c.Element(id)
	assert.Equal(t, 1.0, e.Width, "committed zero size is clamped")
}

func TestNudgeSelected(t *testing.T) {
	c := newTestController(t)
	id := addText(t, c, 10, 10, 100, 20)

	require.True(t, c.NudgeSelected(1, -1))
	e, _ := c.Element(id)
	assert.Equal(t, 11.0, e.X)
	assert.Equal(t, 9.0, e.Y)

	assert.False(t, c.NudgeSelected(0, 0))
	c.ClearSelection()
	assert.False(t, c.NudgeSelected(1, 1))
}

// ============================================================
// View
// ============================================================

func TestViewSettingsAreClamped(t *testing.T) {
	c := newTestController(t)
	entries := c.HistoryLen()

	c.SetZoom(10)
	assert.Equal(t, MaxZoom, c.Document().Zoom)
	c.SetZoom(0)
	assert.Equal(t, MinZoom, c.Document().Zoom)
	c.SetGridSize(-3)
	assert.Equal(t, 1.0, c.Document().GridSize)
	assert.Equal(t, entries, c.HistoryLen())

	require.True(t, c.SetPageMargins(models.Margins{Top: -5, Right: 20, Bottom: 20, Left: 20}))
	assert.Equal(t, 0.0, c.Document().PageMargins.Top)
	assert.False(t, c.SetPageMargins(models.Margins{Top: 0, Right: 20, Bottom: 20, Left: 20}))

	require.True(t, c.Rename("Resume"))
	assert.False(t, c.Rename(""))
	assert.Equal(t, "Resume", c.Document().Name)
}
