package projector

import "strings"

// ============================================================
// Text layout
// ============================================================

// Переносов и шейпинга нет: строки режутся только по '\n'.
// Ширина символов неизвестна, поэтому выравнивание задаётся якорем.

type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// TextLine: одна строка с точкой привязки на базовой линии.
type TextLine struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Baseline float64 `json:"baseline"`
	Anchor   Anchor  `json:"anchor"`
}

// baselineShift: положение базовой линии внутри строки, в долях кегля.
const baselineShift = 0.35

// Lines раскладывает текстовый примитив по строкам. SVG и растр используют
// одну и ту же раскладку.
func (p Primitive) Lines() []TextLine {
	if p.Kind != KindText || p.Text == nil || p.Text.Content == "" {
		return nil
	}
	t := p.Text
	rows := strings.Split(strings.ReplaceAll(t.Content, "\r\n", "\n"), "\n")
	lh := t.FontSize * t.LineHeight
	block := lh * float64(len(rows))

	top := p.Y
	switch t.VAlign {
	case "middle":
		top = p.Y + (p.Height-block)/2
	case "bottom":
		top = p.Y + p.Height - block
	}

	x, anchor := p.X, AnchorStart
	switch t.Align {
	case "center":
		x, anchor = p.X+p.Width/2, AnchorMiddle
	case "right":
		x, anchor = p.X+p.Width, AnchorEnd
	}

	out := make([]TextLine, len(rows))
	for i, row := range rows {
		out[i] = TextLine{
			Text:     row,
			X:        x,
			Baseline: top + float64(i)*lh + lh/2 + t.FontSize*baselineShift,
			Anchor:   anchor,
		}
	}
	return out
}
