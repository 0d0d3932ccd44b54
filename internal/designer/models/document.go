package models

import (
	"sort"
	"time"
)

// ============================================================
// Page & Document
// ============================================================

// A4 при 96 dpi.
const (
	DefaultPageWidth  = 794.0
	DefaultPageHeight = 1123.0
	DefaultGridSize   = 10.0
	DefaultZoom       = 1.0
)

type Page struct {
	ID       string    `json:"id"`
	Elements []Element `json:"elements"`
}

func (p Page) Clone() Page {
	out := Page{ID: p.ID, Elements: make([]Element, len(p.Elements))}
	for i, e := range p.Elements {
		out.Elements[i] = e.Clone()
	}
	return out
}

// Index возвращает позицию элемента в странице или -1.
func (p Page) Index(id string) int {
	for i := range p.Elements {
		if p.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

func (p Page) Has(id string) bool {
	return p.Index(id) >= 0
}

type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

type Document struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Pages            []Page    `json:"pages"`
	CurrentPageIndex int       `json:"currentPageIndex"`
	PageWidth        float64   `json:"pageWidth"`
	PageHeight       float64   `json:"pageHeight"`
	PageMargins      Margins   `json:"pageMargins"`
	Zoom             float64   `json:"zoom"`
	ShowGrid         bool      `json:"showGrid"`
	GridSize         float64   `json:"gridSize"`
	ShowMarginGuides bool      `json:"showMarginGuides"`
	SnapToGuides     bool      `json:"snapToGuides"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewDocument создаёт документ с одной пустой страницей.
func NewDocument(id, pageID, name string) *Document {
	return &Document{
		ID:           id,
		Name:         name,
		Pages:        []Page{{ID: pageID, Elements: []Element{}}},
		PageWidth:    DefaultPageWidth,
		PageHeight:   DefaultPageHeight,
		PageMargins:  Margins{Top: 40, Right: 40, Bottom: 40, Left: 40},
		Zoom:         DefaultZoom,
		GridSize:     DefaultGridSize,
		SnapToGuides: true,
	}
}

// Clone: глубокая копия. История хранит только такие копии.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Pages = make([]Page, len(d.Pages))
	for i, p := range d.Pages {
		out.Pages[i] = p.Clone()
	}
	return &out
}

// CurrentPage возвращает активную страницу (nil, если страниц нет).
func (d *Document) CurrentPage() *Page {
	if d.CurrentPageIndex < 0 || d.CurrentPageIndex >= len(d.Pages) {
		return nil
	}
	return &d.Pages[d.CurrentPageIndex]
}

// Repair приводит загруженный извне документ к рабочему состоянию.
func (d *Document) Repair(newID func() string) {
	if len(d.Pages) == 0 {
		d.Pages = []Page{{ID: newID(), Elements: []Element{}}}
	}
	for i := range d.Pages {
		if d.Pages[i].ID == "" {
			d.Pages[i].ID = newID()
		}
		if d.Pages[i].Elements == nil {
			d.Pages[i].Elements = []Element{}
		}
		for j := range d.Pages[i].Elements {
			if d.Pages[i].Elements[j].ID == "" {
				d.Pages[i].Elements[j].ID = newID()
			}
			d.Pages[i].Elements[j].Normalize(false)
		}
	}
	if d.CurrentPageIndex < 0 || d.CurrentPageIndex >= len(d.Pages) {
		d.CurrentPageIndex = 0
	}
	if d.PageWidth <= 0 {
		d.PageWidth = DefaultPageWidth
	}
	if d.PageHeight <= 0 {
		d.PageHeight = DefaultPageHeight
	}
	if d.Zoom <= 0 {
		d.Zoom = DefaultZoom
	}
	if d.GridSize <= 0 {
		d.GridSize = DefaultGridSize
	}
}

// PaintOrder возвращает индексы элементов снизу вверх:
// по zIndex, при равенстве: по порядку добавления.
func PaintOrder(elements []Element) []int {
	order := make([]int, len(elements))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return elements[order[a]].ZIndex < elements[order[b]].ZIndex
	})
	return order
}
