package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"cv-designer/internal/designer/controller"
	"cv-designer/internal/designer/models"
	"cv-designer/internal/storage"
	"cv-designer/internal/storage/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(t *testing.T, store storage.Store) *Sessions {
	n := 0
	var mu sync.Mutex
	return NewSessions(store, Options{
		HistoryLimit: 10,
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
}

func TestCreateAndGet(t *testing.T) {
	m := newTestSessions(t, nil)

	s := m.Create("")
	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.Len())

	_ = s.Do(func(c *controller.Controller) error {
		doc := c.Document()
		assert.Equal(t, "Untitled", doc.Name)
		assert.Equal(t, models.DefaultPageWidth, doc.PageWidth)
		assert.Equal(t, 1, c.PageCount())
		return nil
	})

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCreateUsesConfiguredPageSize(t *testing.T) {
	m := NewSessions(nil, Options{PageWidth: 612, PageHeight: 792})
	s := m.Create("Letter")

	_ = s.Do(func(c *controller.Controller) error {
		assert.Equal(t, 612.0, c.Document().PageWidth)
		assert.Equal(t, 792.0, c.Document().PageHeight)
		return nil
	})
}

func TestSaveAndLoad(t *testing.T) {
	store := filestore.New(t.TempDir())
	m := newTestSessions(t, store)
	ctx := context.Background()

	s := m.Create("My CV")
	var elementID string
	_ = s.Do(func(c *controller.Controller) error {
		elementID, _ = c.AddElement(models.TypeText, models.Position(10, 10))
		c.UpdateElement(elementID, models.Position(20, 20), false)
		return nil
	})

	doc, err := m.Save(ctx, s.ID())
	require.NoError(t, err)
	assert.False(t, doc.UpdatedAt.IsZero())

	// черновик зафиксирован перед записью
	_ = s.Do(func(c *controller.Controller) error {
		assert.False(t, c.HasDraft())
		return nil
	})

	require.True(t, m.Close(s.ID()))
	_, err = m.Get(s.ID())
	require.ErrorIs(t, err, ErrSessionNotFound)

	reopened, err := m.Open(ctx, s.ID())
	require.NoError(t, err)
	_ = reopened.Do(func(c *controller.Controller) error {
		e, ok := c.Element(elementID)
		require.True(t, ok)
		assert.Equal(t, 20.0, e.X)
		assert.False(t, c.CanUndo(), "history starts fresh after load")
		return nil
	})

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "My CV", list[0].Name)
}

func TestLoadDiscardsLiveState(t *testing.T) {
	m := newTestSessions(t, filestore.New(t.TempDir()))
	ctx := context.Background()

	s := m.Create("CV")
	_, err := m.Save(ctx, s.ID())
	require.NoError(t, err)
	_ = s.Do(func(c *controller.Controller) error {
		c.AddElement(models.TypeShape, models.Patch{})
		return nil
	})

	reloaded, err := m.Load(ctx, s.ID())
	require.NoError(t, err)
	assert.Same(t, s, reloaded, "reload keeps the session handlers already hold")
	assert.False(t, reloaded.Unsaved())
	_ = reloaded.Do(func(c *controller.Controller) error {
		assert.Empty(t, c.CurrentPage().Elements)
		assert.False(t, c.CanUndo())
		return nil
	})
}

// slowStore задерживает Load, чтобы первые обращения к документу пересеклись.
type slowStore struct {
	storage.Store
	delay time.Duration
}

func (s slowStore) Load(ctx context.Context, id string) (*models.Document, error) {
	time.Sleep(s.delay)
	return s.Store.Load(ctx, id)
}

func TestOpenConcurrentFirstAccess(t *testing.T) {
	files := filestore.New(t.TempDir())
	ctx := context.Background()
	require.NoError(t, files.Save(ctx, models.NewDocument("doc1", "page1", "CV")))

	m := newTestSessions(t, slowStore{Store: files, delay: 5 * time.Millisecond})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := m.Open(ctx, "doc1")
			if !assert.NoError(t, err) {
				return
			}
			_ = s.Do(func(c *controller.Controller) error {
				c.AddElement(models.TypeText, models.Position(float64(i*50), 0))
				return nil
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, m.Len())
	s, err := m.Get("doc1")
	require.NoError(t, err)
	_ = s.Do(func(c *controller.Controller) error {
		assert.Len(t, c.CurrentPage().Elements, 2)
		return nil
	})
}

func TestOpenUnknown(t *testing.T) {
	ctx := context.Background()

	_, err := newTestSessions(t, nil).Open(ctx, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = newTestSessions(t, filestore.New(t.TempDir())).Open(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWithoutStore(t *testing.T) {
	m := newTestSessions(t, nil)
	ctx := context.Background()
	s := m.Create("CV")

	_, err := m.Save(ctx, s.ID())
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = m.Load(ctx, s.ID())
	assert.ErrorIs(t, err, ErrNoStore)

	list, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, m.Delete(ctx, s.ID()))
	assert.ErrorIs(t, m.Delete(ctx, s.ID()), ErrSessionNotFound)
	assert.NoError(t, m.Ping(ctx))
}

func TestDelete(t *testing.T) {
	m := newTestSessions(t, filestore.New(t.TempDir()))
	ctx := context.Background()

	saved := m.Create("Saved")
	_, err := m.Save(ctx, saved.ID())
	require.NoError(t, err)
	unsaved := m.Create("Unsaved")

	assert.NoError(t, m.Delete(ctx, saved.ID()))
	assert.NoError(t, m.Delete(ctx, unsaved.ID()))
	assert.Equal(t, 0, m.Len())
	assert.ErrorIs(t, m.Delete(ctx, saved.ID()), storage.ErrNotFound)
}

func TestEvict(t *testing.T) {
	m := newTestSessions(t, nil)
	old := m.Create("old")
	fresh := m.Create("fresh")
	old.lastUsed = time.Now().Add(-time.Hour)

	assert.Equal(t, 1, m.Evict(context.Background(), 30*time.Minute))

	_, err := m.Get(old.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(fresh.ID())
	assert.NoError(t, err)
}

func TestEvictKeepsUnsavedWithoutStore(t *testing.T) {
	m := newTestSessions(t, nil)
	s := m.Create("draft")
	_ = s.Do(func(c *controller.Controller) error {
		c.AddElement(models.TypeText, models.Patch{})
		return nil
	})
	s.lastUsed = time.Now().Add(-time.Hour)

	assert.True(t, s.Unsaved())
	assert.Equal(t, 0, m.Evict(context.Background(), 30*time.Minute))
	_, err := m.Get(s.ID())
	assert.NoError(t, err)
}

func TestEvictSavesUnsaved(t *testing.T) {
	store := filestore.New(t.TempDir())
	m := newTestSessions(t, store)
	ctx := context.Background()

	s := m.Create("CV")
	var id string
	_ = s.Do(func(c *controller.Controller) error {
		id, _ = c.AddElement(models.TypeText, models.Position(10, 10))
		c.UpdateElement(id, models.Position(40, 40), false)
		return nil
	})
	s.lastUsed = time.Now().Add(-time.Hour)

	assert.Equal(t, 1, m.Evict(ctx, 30*time.Minute))
	assert.Equal(t, 0, m.Len())

	doc, err := store.Load(ctx, s.ID())
	require.NoError(t, err)
	require.Len(t, doc.Pages[0].Elements, 1)
	assert.Equal(t, 40.0, doc.Pages[0].Elements[0].X, "draft is committed before the idle save")
}

func TestUnsavedTracksChanges(t *testing.T) {
	m := newTestSessions(t, filestore.New(t.TempDir()))
	ctx := context.Background()

	s := m.Create("CV")
	assert.False(t, s.Unsaved())

	_ = s.Do(func(c *controller.Controller) error {
		c.SetZoom(2)
		return nil
	})
	assert.True(t, s.Unsaved())

	_, err := m.Save(ctx, s.ID())
	require.NoError(t, err)
	assert.False(t, s.Unsaved())
}

func TestDoSerializesAccess(t *testing.T) {
	m := NewSessions(nil, Options{})
	s := m.Create("CV")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Do(func(c *controller.Controller) error {
				c.AddElement(models.TypeText, models.Position(float64(i), 0))
				return nil
			})
		}(i)
	}
	wg.Wait()

	_ = s.Do(func(c *controller.Controller) error {
		assert.Len(t, c.CurrentPage().Elements, 20)
		return nil
	})
}
