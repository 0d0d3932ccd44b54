package models

// ============================================================
// Element kinds
// ============================================================

// ElementType: закрытый набор видов элементов. Тип не меняется после создания.
type ElementType string

const (
	TypeText             ElementType = "text"
	TypeShape            ElementType = "shape"
	TypeAdvancedShape    ElementType = "advancedShape"
	TypeLine             ElementType = "line"
	TypeDivider          ElementType = "divider"
	TypeIcon             ElementType = "icon"
	TypePhotoPlaceholder ElementType = "photoPlaceholder"
	TypeProgressBar      ElementType = "progressBar"
	TypeSection          ElementType = "section"
	TypeColumns          ElementType = "columns"
	TypeBanner           ElementType = "banner"
)

// ElementTypes перечисляет все поддерживаемые типы в каноническом порядке.
var ElementTypes = []ElementType{
	TypeText, TypeShape, TypeAdvancedShape, TypeLine, TypeDivider, TypeIcon,
	TypePhotoPlaceholder, TypeProgressBar, TypeSection, TypeColumns, TypeBanner,
}

func (t ElementType) Valid() bool {
	switch t {
	case TypeText, TypeShape, TypeAdvancedShape, TypeLine, TypeDivider, TypeIcon,
		TypePhotoPlaceholder, TypeProgressBar, TypeSection, TypeColumns, TypeBanner:
		return true
	}
	return false
}

// ============================================================
// Type-specific discriminators
// ============================================================

type ShapeType string

const (
	ShapeRectangle  ShapeType = "rectangle"
	ShapeCircle     ShapeType = "circle"
	ShapeEllipse    ShapeType = "ellipse"
	ShapeTriangle   ShapeType = "triangle"
	ShapeDiamond    ShapeType = "diamond"
	ShapePentagon   ShapeType = "pentagon"
	ShapeHexagon    ShapeType = "hexagon"
	ShapeOctagon    ShapeType = "octagon"
	ShapeStar       ShapeType = "star"
	ShapeHeart      ShapeType = "heart"
	ShapeArrowRight ShapeType = "arrowRight"
	ShapeArrowLeft  ShapeType = "arrowLeft"
	ShapeArrowUp    ShapeType = "arrowUp"
	ShapeArrowDown  ShapeType = "arrowDown"
	ShapeChevron    ShapeType = "chevron"
	ShapeBadge      ShapeType = "badge"
	ShapeShield     ShapeType = "shield"
	ShapeBookmark   ShapeType = "bookmark"
	ShapeFlag       ShapeType = "flag"
	ShapeBurst      ShapeType = "burst"
)

func (s ShapeType) Valid() bool {
	switch s {
	case ShapeRectangle, ShapeCircle, ShapeEllipse, ShapeTriangle, ShapeDiamond,
		ShapePentagon, ShapeHexagon, ShapeOctagon, ShapeStar, ShapeHeart,
		ShapeArrowRight, ShapeArrowLeft, ShapeArrowUp, ShapeArrowDown, ShapeChevron,
		ShapeBadge, ShapeShield, ShapeBookmark, ShapeFlag, ShapeBurst:
		return true
	}
	return false
}

type DividerType string

const (
	DividerSolid  DividerType = "solid"
	DividerDashed DividerType = "dashed"
	DividerDotted DividerType = "dotted"
	DividerDouble DividerType = "double"
	DividerWave   DividerType = "wave"
)

func (d DividerType) Valid() bool {
	switch d {
	case DividerSolid, DividerDashed, DividerDotted, DividerDouble, DividerWave:
		return true
	}
	return false
}

type MaskType string

const (
	MaskSquare  MaskType = "square"
	MaskCircle  MaskType = "circle"
	MaskRounded MaskType = "rounded"
	MaskHexagon MaskType = "hexagon"
)

func (m MaskType) Valid() bool {
	switch m {
	case MaskSquare, MaskCircle, MaskRounded, MaskHexagon:
		return true
	}
	return false
}

type BannerType string

const (
	BannerSolid  BannerType = "solid"
	BannerAngled BannerType = "angled"
	BannerWave   BannerType = "wave"
	BannerRibbon BannerType = "ribbon"
)

func (b BannerType) Valid() bool {
	switch b {
	case BannerSolid, BannerAngled, BannerWave, BannerRibbon:
		return true
	}
	return false
}
