package models

import (
	"strconv"
	"strings"
)

// ============================================================
// Style bag
// ============================================================

// Style: открытый набор ключ/значение. Неизвестные ключи сохраняются как есть.
type Style map[string]any

// Clone делает глубокую копию, включая вложенные map/slice из JSON.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge накладывает patch поверх s по ключам. Ключ со значением nil удаляется.
func (s Style) Merge(patch Style) Style {
	if s == nil {
		s = Style{}
	}
	for k, v := range patch {
		if v == nil {
			delete(s, k)
			continue
		}
		s[k] = cloneValue(v)
	}
	return s
}

func (s Style) String(key, def string) string {
	switch v := s[key].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return def
}

// Float понимает числа и строки вида "12" или "12px".
func (s Style) Float(key string, def float64) float64 {
	switch v := s[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(v), "px")
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	}
	return def
}

func (s Style) Bool(key string, def bool) bool {
	switch v := s[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func (s Style) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case Style:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
