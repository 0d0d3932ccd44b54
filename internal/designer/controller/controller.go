package controller

import (
	"cv-designer/internal/designer/history"
	"cv-designer/internal/designer/models"

	"github.com/google/uuid"
)

// ============================================================
// Controller
// ============================================================

// Options настраивает контроллер. Нулевые значения заменяются умолчаниями.
type Options struct {
	HistoryLimit int
	NewID        func() string
}

// Controller единолично владеет документом, историей и выделением.
// Все методы синхронные; конкурентный доступ должен сериализовать вызывающий.
//
// Методы, которые ничего не изменили (неизвестный id, недопустимое состояние,
// край истории), возвращают false и не трогают историю.
type Controller struct {
	doc       *models.Document
	history   *history.History
	selection []string
	dirty     bool
	rev       uint64
	newID     func() string
}

// New берёт документ во владение. nil: новый пустой документ.
func New(doc *models.Document, opts Options) *Controller {
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	if doc == nil {
		doc = models.NewDocument(newID(), newID(), "Untitled")
	} else {
		doc = doc.Clone()
	}
	if doc.ID == "" {
		doc.ID = newID()
	}
	doc.Repair(newID)

	return &Controller{
		doc:     doc,
		history: history.New(doc, opts.HistoryLimit),
		newID:   newID,
	}
}

// Document возвращает копию живого документа, включая черновые изменения.
func (c *Controller) Document() *models.Document {
	return c.doc.Clone()
}

// CurrentPage возвращает копию активной страницы.
func (c *Controller) CurrentPage() models.Page {
	return c.page().Clone()
}

func (c *Controller) CurrentPageIndex() int { return c.doc.CurrentPageIndex }
func (c *Controller) PageCount() int        { return len(c.doc.Pages) }

// Element ищет элемент на активной странице.
func (c *Controller) Element(id string) (models.Element, bool) {
	e := c.find(id)
	if e == nil {
		return models.Element{}, false
	}
	return e.Clone(), true
}

// HasDraft: есть изменения, ещё не записанные в историю.
func (c *Controller) HasDraft() bool { return c.dirty }

// Revision растёт при каждом изменении документа, включая черновые и
// настройки вида. По нему сессия понимает, что есть несохранённое.
func (c *Controller) Revision() uint64 { return c.rev }

func (c *Controller) CanUndo() bool   { return c.history.CanUndo() }
func (c *Controller) CanRedo() bool   { return c.history.CanRedo() }
func (c *Controller) HistoryLen() int { return c.history.Len() }

// ============================================================
// History
// ============================================================

// CommitElementChange записывает текущее живое состояние одним шагом истории.
func (c *Controller) CommitElementChange() {
	c.commit()
}

func (c *Controller) commit() {
	c.history.Push(c.doc)
	c.dirty = false
	c.rev++
}

// draft помечает живое состояние как черновое.
func (c *Controller) draft() {
	c.dirty = true
	c.rev++
}

// Replace подменяет документ целиком: история начинается заново, выделение сбрасывается.
func (c *Controller) Replace(doc *models.Document) {
	doc = doc.Clone()
	if doc.ID == "" {
		doc.ID = c.doc.ID
	}
	doc.Repair(c.newID)

	c.doc = doc
	c.history.Reset(doc)
	c.selection = nil
	c.dirty = false
	c.rev++
}

func (c *Controller) Undo() bool {
	doc, ok := c.history.Undo()
	if !ok {
		return false
	}
	c.restore(doc)
	return true
}

func (c *Controller) Redo() bool {
	doc, ok := c.history.Redo()
	if !ok {
		return false
	}
	c.restore(doc)
	return true
}

// restore подменяет живой документ снимком. Настройки вида не откатываются.
func (c *Controller) restore(doc *models.Document) {
	doc.Zoom = c.doc.Zoom
	doc.ShowGrid = c.doc.ShowGrid
	doc.GridSize = c.doc.GridSize
	doc.ShowMarginGuides = c.doc.ShowMarginGuides
	doc.SnapToGuides = c.doc.SnapToGuides

	c.doc = doc
	c.dirty = false
	c.rev++
	c.reconcileSelection()
}

// ============================================================
// Internal helpers
// ============================================================

func (c *Controller) page() *models.Page {
	return c.doc.CurrentPage()
}

func (c *Controller) find(id string) *models.Element {
	p := c.page()
	if p == nil {
		return nil
	}
	if i := p.Index(id); i >= 0 {
		return &p.Elements[i]
	}
	return nil
}

// reconcileSelection выбрасывает из выделения id, которых нет на активной странице.
func (c *Controller) reconcileSelection() {
	p := c.page()
	kept := c.selection[:0]
	for _, id := range c.selection {
		if p != nil && p.Has(id) {
			kept = append(kept, id)
		}
	}
	c.selection = kept
}
