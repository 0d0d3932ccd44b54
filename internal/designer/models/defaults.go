package models

// ============================================================
// Defaults
// ============================================================

// DefaultElement возвращает базовую запись для типа. Для неизвестного типа ok=false.
func DefaultElement(t ElementType) (Element, bool) {
	e := Element{Type: t, X: 50, Y: 50}

	switch t {
	case TypeText:
		e.Width, e.Height = 200, 40
		e.Content = "Double-click to edit"
		e.Style = Style{
			"fontFamily": "Inter",
			"fontSize":   14.0,
			"fontWeight": "normal",
			"color":      "#1f2937",
			"textAlign":  "left",
		}
	case TypeShape:
		e.Width, e.Height = 100, 100
		e.ShapeType = ShapeRectangle
		e.Style = Style{
			"backgroundColor": "#3b82f6",
			"borderRadius":    0.0,
			"borderWidth":     0.0,
			"borderColor":     "#1e40af",
		}
	case TypeAdvancedShape:
		e.Width, e.Height = 100, 100
		e.ShapeType = ShapeStar
		e.Style = Style{
			"backgroundColor": "#f59e0b",
			"borderWidth":     0.0,
			"borderColor":     "#b45309",
		}
	case TypeLine:
		e.Width, e.Height = 200, 2
		e.Style = Style{
			"color":     "#374151",
			"thickness": 2.0,
		}
	case TypeDivider:
		e.Width, e.Height = 400, 20
		e.DividerType = DividerSolid
		e.Style = Style{
			"color":     "#d1d5db",
			"thickness": 1.0,
		}
	case TypeIcon:
		e.Width, e.Height = 32, 32
		e.IconName = "star"
		e.Style = Style{
			"color": "#3b82f6",
		}
	case TypePhotoPlaceholder:
		e.Width, e.Height = 120, 120
		e.MaskType = MaskCircle
		e.Style = Style{
			"backgroundColor": "#e5e7eb",
			"borderWidth":     2.0,
			"borderColor":     "#ffffff",
		}
	case TypeProgressBar:
		e.Width, e.Height = 200, 12
		e.Progress = 75
		e.Label = "Skill"
		e.Style = Style{
			"backgroundColor": "#e5e7eb",
			"progressColor":   "#3b82f6",
			"labelColor":      "#374151",
			"borderRadius":    6.0,
			"showLabel":       true,
			"showPercentage":  false,
			"fontSize":        11.0,
		}
	case TypeSection:
		e.Width, e.Height = 500, 200
		e.SectionTitle = "Section"
		e.ShowTitle = true
		e.Style = Style{
			"backgroundColor": "transparent",
			"borderWidth":     0.0,
			"borderColor":     "#e5e7eb",
			"color":           "#111827",
			"fontSize":        16.0,
			"fontWeight":      "bold",
			"padding":         12.0,
		}
	case TypeColumns:
		e.Width, e.Height = 500, 200
		e.Columns = 2
		e.Gap = 20
		e.Style = Style{
			"backgroundColor": "transparent",
			"borderWidth":     0.0,
			"borderColor":     "#e5e7eb",
		}
	case TypeBanner:
		e.X, e.Y = 0, 0
		e.Width, e.Height = DefaultPageWidth, 120
		e.BannerType = BannerSolid
		e.Content = "Your Name"
		e.Style = Style{
			"backgroundColor": "#1e3a8a",
			"color":           "#ffffff",
			"fontSize":        32.0,
			"fontWeight":      "bold",
			"textAlign":       "center",
		}
	default:
		return Element{}, false
	}

	return e, true
}
