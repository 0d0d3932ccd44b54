package models

// ============================================================
// Element
// ============================================================

// MinDimension: минимальный размер, до которого поджимаются некорректные ширина/высота.
const MinDimension = 1.0

type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation float64     `json:"rotation,omitempty"`
	ZIndex   int         `json:"zIndex"`
	Style    Style       `json:"style"`

	Content      string      `json:"content,omitempty"`
	ShapeType    ShapeType   `json:"shapeType,omitempty"`
	DividerType  DividerType `json:"dividerType,omitempty"`
	MaskType     MaskType    `json:"maskType,omitempty"`
	BannerType   BannerType  `json:"bannerType,omitempty"`
	IconName     string      `json:"iconName,omitempty"`
	Src          string      `json:"src,omitempty"`
	Progress     float64     `json:"progress,omitempty"`
	Label        string      `json:"label,omitempty"`
	SectionTitle string      `json:"sectionTitle,omitempty"`
	ShowTitle    bool        `json:"showTitle,omitempty"`
	Columns      int         `json:"columns,omitempty"`
	Gap          float64     `json:"gap,omitempty"`
}

// Clone возвращает независимую копию элемента (style копируется глубоко).
func (e Element) Clone() Element {
	e.Style = e.Style.Clone()
	return e
}

func (e Element) Right() float64   { return e.X + e.Width }
func (e Element) Bottom() float64  { return e.Y + e.Height }
func (e Element) CenterX() float64 { return e.X + e.Width/2 }
func (e Element) CenterY() float64 { return e.Y + e.Height/2 }

// Visible: элемент с нулевой площадью не рисуется.
func (e Element) Visible() bool {
	return e.Width > 0 && e.Height > 0
}

// Normalize поджимает значения к допустимым. В черновике нулевой размер разрешён
// (создание протягиванием), отрицательный: никогда.
func (e *Element) Normalize(draft bool) {
	e.Width = clampDimension(e.Width, draft)
	e.Height = clampDimension(e.Height, draft)

	if e.Progress < 0 {
		e.Progress = 0
	}
	if e.Progress > 100 {
		e.Progress = 100
	}
	if e.Type == TypeColumns && e.Columns < 1 {
		e.Columns = 1
	}
	if e.Gap < 0 {
		e.Gap = 0
	}
	if e.Style == nil {
		e.Style = Style{}
	}
}

func clampDimension(v float64, draft bool) float64 {
	if v < 0 {
		return MinDimension
	}
	if v == 0 && !draft {
		return MinDimension
	}
	return v
}

// ============================================================
// Patch
// ============================================================

// Patch: частичное обновление элемента. nil-поля не трогаются, Style сливается по ключам.
// Тип элемента через Patch не меняется.
type Patch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	ZIndex   *int     `json:"zIndex,omitempty"`
	Style    Style    `json:"style,omitempty"`

	Content      *string      `json:"content,omitempty"`
	ShapeType    *ShapeType   `json:"shapeType,omitempty"`
	DividerType  *DividerType `json:"dividerType,omitempty"`
	MaskType     *MaskType    `json:"maskType,omitempty"`
	BannerType   *BannerType  `json:"bannerType,omitempty"`
	IconName     *string      `json:"iconName,omitempty"`
	Src          *string      `json:"src,omitempty"`
	Progress     *float64     `json:"progress,omitempty"`
	Label        *string      `json:"label,omitempty"`
	SectionTitle *string      `json:"sectionTitle,omitempty"`
	ShowTitle    *bool        `json:"showTitle,omitempty"`
	Columns      *int         `json:"columns,omitempty"`
	Gap          *float64     `json:"gap,omitempty"`
}

// Apply накладывает patch на элемент.
func (p Patch) Apply(e *Element) {
	setFloat(&e.X, p.X)
	setFloat(&e.Y, p.Y)
	setFloat(&e.Width, p.Width)
	setFloat(&e.Height, p.Height)
	setFloat(&e.Rotation, p.Rotation)
	if p.ZIndex != nil {
		e.ZIndex = *p.ZIndex
	}
	if len(p.Style) > 0 {
		e.Style = e.Style.Merge(p.Style)
	}

	setString(&e.Content, p.Content)
	if p.ShapeType != nil {
		e.ShapeType = *p.ShapeType
	}
	if p.DividerType != nil {
		e.DividerType = *p.DividerType
	}
	if p.MaskType != nil {
		e.MaskType = *p.MaskType
	}
	if p.BannerType != nil {
		e.BannerType = *p.BannerType
	}
	setString(&e.IconName, p.IconName)
	setString(&e.Src, p.Src)
	setFloat(&e.Progress, p.Progress)
	setString(&e.Label, p.Label)
	setString(&e.SectionTitle, p.SectionTitle)
	if p.ShowTitle != nil {
		e.ShowTitle = *p.ShowTitle
	}
	if p.Columns != nil {
		e.Columns = *p.Columns
	}
	setFloat(&e.Gap, p.Gap)
}

// Empty: patch ничего не меняет.
func (p Patch) Empty() bool {
	return p.X == nil && p.Y == nil && p.Width == nil && p.Height == nil &&
		p.Rotation == nil && p.ZIndex == nil && len(p.Style) == 0 &&
		p.Content == nil && p.ShapeType == nil && p.DividerType == nil &&
		p.MaskType == nil && p.BannerType == nil && p.IconName == nil &&
		p.Src == nil && p.Progress == nil && p.Label == nil &&
		p.SectionTitle == nil && p.ShowTitle == nil && p.Columns == nil && p.Gap == nil
}

// Position собирает patch только с координатами.
func Position(x, y float64) Patch {
	return Patch{X: &x, Y: &y}
}

// Frame собирает patch с координатами и размером.
func Frame(x, y, width, height float64) Patch {
	return Patch{X: &x, Y: &y, Width: &width, Height: &height}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
