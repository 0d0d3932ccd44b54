package history

import "cv-designer/internal/designer/models"

// ============================================================
// History
// ============================================================

// DefaultLimit: сколько снимков хранится до вытеснения самых старых.
const DefaultLimit = 50

// History: линейный стек снимков документа с курсором.
// Запись после отката отбрасывает всё, что было правее курсора.
type History struct {
	entries []*models.Document
	cursor  int
	limit   int
}

// New создаёт историю с начальным снимком initial.
func New(initial *models.Document, limit int) *History {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &History{
		entries: []*models.Document{initial.Clone()},
		cursor:  0,
		limit:   limit,
	}
}

// Push записывает копию doc как новый шаг.
func (h *History) Push(doc *models.Document) {
	h.entries = append(h.entries[:h.cursor+1], doc.Clone())
	if len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append([]*models.Document(nil), h.entries[drop:]...)
	}
	h.cursor = len(h.entries) - 1
}

// Undo сдвигает курсор назад и возвращает копию снимка. На первом шаге ok=false.
func (h *History) Undo() (*models.Document, bool) {
	if h.cursor <= 0 {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor].Clone(), true
}

// Redo сдвигает курсор вперёд. На последнем шаге ok=false.
func (h *History) Redo() (*models.Document, bool) {
	if h.cursor >= len(h.entries)-1 {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor].Clone(), true
}

// Reset выбрасывает всю историю и начинает заново с doc.
func (h *History) Reset(doc *models.Document) {
	h.entries = []*models.Document{doc.Clone()}
	h.cursor = 0
}

func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }
func (h *History) Len() int      { return len(h.entries) }
