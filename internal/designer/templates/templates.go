package templates

import (
	"sort"

	"cv-designer/internal/designer/models"
)

// ============================================================
// Template library
// ============================================================

// Шаблоны: готовые наборы элементов для страницы A4 (794×1123).
// id пустые: контроллер выдаёт свежие при загрузке.

type builder func() []models.Element

var library = map[string]builder{
	"classic": classic,
	"modern":  modern,
	"sidebar": sidebar,
}

// Names возвращает имена шаблонов по алфавиту.
func Names() []string {
	out := make([]string, 0, len(library))
	for name := range library {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Get возвращает новую копию элементов шаблона.
func Get(name string) ([]models.Element, bool) {
	build, ok := library[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// ============================================================
// Builders
// ============================================================

func el(t models.ElementType, x, y, w, h float64, z int, style models.Style, set func(*models.Element)) models.Element {
	e, _ := models.DefaultElement(t)
	e.X, e.Y, e.Width, e.Height = x, y, w, h
	e.ZIndex = z
	e.Style = e.Style.Merge(style)
	if set != nil {
		set(&e)
	}
	return e
}

func text(content string, x, y, w, h float64, z int, style models.Style) models.Element {
	return el(models.TypeText, x, y, w, h, z, style, func(e *models.Element) { e.Content = content })
}

func section(title string, x, y, w, h float64, z int) models.Element {
	return el(models.TypeSection, x, y, w, h, z, nil, func(e *models.Element) { e.SectionTitle = title })
}

func skill(label string, progress, x, y, w float64, z int, color string) models.Element {
	return el(models.TypeProgressBar, x, y, w, 10, z, models.Style{"progressColor": color}, func(e *models.Element) {
		e.Label = label
		e.Progress = progress
	})
}

func classic() []models.Element {
	return []models.Element{
		text("Jane Doe", 40, 40, 714, 48, 0, models.Style{"fontSize": 34.0, "fontWeight": "bold", "textAlign": "center", "fontFamily": "Merriweather"}),
		text("Product Designer · jane@example.com · +1 555 0100", 40, 92, 714, 24, 1, models.Style{"textAlign": "center", "color": "#4b5563"}),
		el(models.TypeDivider, 40, 124, 714, 12, 2, models.Style{"color": "#111827"}, nil),
		section("Experience", 40, 150, 714, 360, 3),
		text("Senior Designer, Acme Corp (2020 – present)\nLed the design system and onboarding redesign.", 52, 196, 690, 120, 4, nil),
		section("Education", 40, 530, 714, 180, 5),
		text("BA Visual Communication, State University", 52, 576, 690, 60, 6, nil),
		section("Skills", 40, 730, 714, 200, 7),
		skill("Figma", 90, 52, 796, 320, 8, "#111827"),
		skill("Prototyping", 80, 52, 846, 320, 9, "#111827"),
	}
}

func modern() []models.Element {
	accent := "#2563eb"
	return []models.Element{
		el(models.TypeBanner, 0, 0, models.DefaultPageWidth, 140, 0, models.Style{"backgroundColor": accent}, func(e *models.Element) {
			e.BannerType = models.BannerAngled
			e.Content = "Jane Doe"
		}),
		el(models.TypePhotoPlaceholder, 654, 20, 100, 100, 1, nil, nil),
		el(models.TypeIcon, 40, 166, 16, 16, 2, models.Style{"color": accent}, func(e *models.Element) { e.IconName = "email" }),
		text("jane@example.com", 62, 162, 220, 24, 3, nil),
		el(models.TypeIcon, 300, 166, 16, 16, 4, models.Style{"color": accent}, func(e *models.Element) { e.IconName = "phone" }),
		text("+1 555 0100", 322, 162, 160, 24, 5, nil),
		section("Profile", 40, 210, 714, 140, 6),
		text("Designer focused on accessible, data-heavy products.", 52, 256, 690, 60, 7, nil),
		el(models.TypeColumns, 40, 370, 714, 420, 8, nil, func(e *models.Element) { e.Columns = 2; e.Gap = 24 }),
		section("Experience", 40, 370, 345, 420, 9),
		section("Skills", 409, 370, 345, 420, 10),
		skill("Research", 85, 421, 436, 300, 11, accent),
		skill("UI design", 95, 421, 486, 300, 12, accent),
		skill("Front-end", 60, 421, 536, 300, 13, accent),
	}
}

func sidebar() []models.Element {
	side := "#1f2937"
	return []models.Element{
		el(models.TypeShape, 0, 0, 260, models.DefaultPageHeight, 0, models.Style{"backgroundColor": side}, nil),
		el(models.TypePhotoPlaceholder, 70, 40, 120, 120, 1, models.Style{"borderColor": "#f9fafb"}, nil),
		text("Jane Doe", 20, 180, 220, 40, 2, models.Style{"fontSize": 24.0, "fontWeight": "bold", "color": "#f9fafb", "textAlign": "center"}),
		text("Product Designer", 20, 220, 220, 24, 3, models.Style{"color": "#d1d5db", "textAlign": "center"}),
		el(models.TypeDivider, 20, 256, 220, 12, 4, models.Style{"color": "#4b5563"}, nil),
		text("Contact", 20, 280, 220, 24, 5, models.Style{"fontWeight": "bold", "color": "#f9fafb"}),
		text("jane@example.com\n+1 555 0100\nBerlin", 20, 308, 220, 72, 6, models.Style{"color": "#d1d5db", "fontSize": 12.0}),
		skill("Figma", 90, 20, 430, 220, 7, "#60a5fa"),
		skill("Research", 75, 20, 480, 220, 8, "#60a5fa"),
		section("Experience", 290, 40, 464, 460, 9),
		text("Senior Designer, Acme Corp\n2020 – present", 302, 86, 440, 120, 10, nil),
		section("Education", 290, 520, 464, 200, 11),
		text("BA Visual Communication", 302, 566, 440, 60, 12, nil),
	}
}
