package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"cv-designer/internal/designer/controller"
	"cv-designer/internal/designer/models"
	"cv-designer/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoStore         = errors.New("persistence is not configured")
)

// ============================================================
// Session
// ============================================================

// Session: открытый документ. Доступ к контроллеру сериализуется мьютексом сессии.
type Session struct {
	mu       sync.Mutex
	id       string
	ctrl     *controller.Controller
	lastUsed time.Time
	savedRev uint64
}

func (s *Session) ID() string { return s.id }

// Unsaved: документ менялся после последней записи или загрузки.
func (s *Session) Unsaved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsaved()
}

func (s *Session) unsaved() bool {
	return s.ctrl.Revision() != s.savedRev
}

// Do выполняет fn с эксклюзивным доступом к контроллеру.
func (s *Session) Do(fn func(c *controller.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = time.Now()
	return fn(s.ctrl)
}

// ============================================================
// Session Manager
// ============================================================

type Options struct {
	HistoryLimit int
	PageWidth    float64
	PageHeight   float64
	NewID        func() string
}

// Sessions: реестр открытых документов по id. store может быть nil.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    storage.Store
	opts     Options
}

func NewSessions(store storage.Store, opts Options) *Sessions {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.PageWidth <= 0 {
		opts.PageWidth = models.DefaultPageWidth
	}
	if opts.PageHeight <= 0 {
		opts.PageHeight = models.DefaultPageHeight
	}
	return &Sessions{
		sessions: make(map[string]*Session),
		store:    store,
		opts:     opts,
	}
}

// Create открывает новый пустой документ.
func (m *Sessions) Create(name string) *Session {
	if name == "" {
		name = "Untitled"
	}
	doc := models.NewDocument(m.opts.NewID(), m.opts.NewID(), name)
	doc.PageWidth = m.opts.PageWidth
	doc.PageHeight = m.opts.PageHeight
	s, _ := m.adopt(doc)
	return s
}

// Get возвращает уже открытую сессию.
func (m *Sessions) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Open возвращает открытую сессию или поднимает документ из хранилища.
// Параллельные первые обращения к одному id получают одну и ту же сессию.
func (m *Sessions) Open(ctx context.Context, id string) (*Session, error) {
	if s, err := m.Get(id); err == nil {
		return s, nil
	}
	if m.store == nil {
		return nil, ErrSessionNotFound
	}
	doc, err := m.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	s, _ := m.adopt(doc)
	return s, nil
}

// Load перечитывает документ из хранилища. Живое состояние уже открытой сессии
// отбрасывается, но сама сессия остаётся той же.
func (m *Sessions) Load(ctx context.Context, id string) (*Session, error) {
	if m.store == nil {
		return nil, ErrNoStore
	}
	doc, err := m.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	s, created := m.adopt(doc)
	if !created {
		_ = s.Do(func(c *controller.Controller) error {
			c.Replace(doc)
			s.savedRev = c.Revision()
			return nil
		})
	}
	return s, nil
}

func (m *Sessions) fetch(ctx context.Context, id string) (*models.Document, error) {
	doc, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	log.Printf("[DESIGNER] loaded document %s (%d pages)", id, len(doc.Pages))
	return doc, nil
}

// Save фиксирует черновик и записывает документ в хранилище.
func (m *Sessions) Save(ctx context.Context, id string) (*models.Document, error) {
	if m.store == nil {
		return nil, ErrNoStore
	}
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	var doc *models.Document
	err = s.Do(func(c *controller.Controller) error {
		var err error
		doc, err = m.persist(ctx, s)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", id, err)
	}
	return doc, nil
}

// persist фиксирует черновик и пишет документ. Вызывается под s.mu.
func (m *Sessions) persist(ctx context.Context, s *Session) (*models.Document, error) {
	if s.ctrl.HasDraft() {
		s.ctrl.CommitElementChange()
	}
	doc := s.ctrl.Document()
	doc.UpdatedAt = time.Now().UTC()
	if err := m.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	s.savedRev = s.ctrl.Revision()
	return doc, nil
}

// Delete закрывает сессию и удаляет сохранённую копию.
func (m *Sessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, open := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if m.store == nil {
		if !open {
			return ErrSessionNotFound
		}
		return nil
	}

	err := m.store.Delete(ctx, id)
	if errors.Is(err, storage.ErrNotFound) && open {
		return nil
	}
	return err
}

// Close закрывает сессию, не трогая хранилище.
func (m *Sessions) Close(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sessions[id]
	delete(m.sessions, id)
	return ok
}

// List перечисляет сохранённые документы.
func (m *Sessions) List(ctx context.Context) ([]storage.Summary, error) {
	if m.store == nil {
		return []storage.Summary{}, nil
	}
	return m.store.List(ctx)
}

func (m *Sessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Evict закрывает сессии, к которым не обращались дольше idle. Несохранённые
// изменения сначала записываются в хранилище; без хранилища или при ошибке
// записи сессия остаётся открытой.
func (m *Sessions) Evict(ctx context.Context, idle time.Duration) int {
	m.mu.Lock()
	candidates := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		candidates = append(candidates, s)
	}
	m.mu.Unlock()

	cutoff := time.Now().Add(-idle)
	n := 0
	for _, s := range candidates {
		if m.evict(ctx, s, cutoff) {
			n++
		}
	}
	return n
}

func (m *Sessions) evict(ctx context.Context, s *Session, cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lastUsed.Before(cutoff) {
		return false
	}
	if s.unsaved() {
		if m.store == nil {
			return false
		}
		if _, err := m.persist(ctx, s); err != nil {
			log.Printf("[DESIGNER] keep idle session %s: save failed: %v", s.id, err)
			return false
		}
		log.Printf("[DESIGNER] saved idle session %s before closing", s.id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[s.id] != s {
		return false
	}
	delete(m.sessions, s.id)
	return true
}

// Ping проверяет хранилище для readiness.
func (m *Sessions) Ping(ctx context.Context) error {
	if p, ok := m.store.(storage.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// adopt регистрирует сессию для doc. Если другой запрос успел открыть этот id,
// возвращается его сессия и created=false.
func (m *Sessions) adopt(doc *models.Document) (*Session, bool) {
	ctrl := controller.New(doc, controller.Options{
		HistoryLimit: m.opts.HistoryLimit,
		NewID:        m.opts.NewID,
	})
	s := &Session{id: doc.ID, ctrl: ctrl, lastUsed: time.Now(), savedRev: ctrl.Revision()}
	if s.id == "" {
		s.id = ctrl.Document().ID
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[s.id]; ok {
		return existing, false
	}
	m.sessions[s.id] = s
	return s, true
}
