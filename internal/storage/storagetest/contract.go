// Package storagetest проверяет, что реализация storage.Store ведёт себя одинаково
// с остальными.
package storagetest

import (
	"context"
	"testing"
	"time"

	"cv-designer/internal/designer/models"
	"cv-designer/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Document собирает документ с одной страницей и одним текстовым элементом.
func Document(id, name string) *models.Document {
	doc := models.NewDocument(id, id+"-p1", name)
	e, _ := models.DefaultElement(models.TypeText)
	e.ID = id + "-e1"
	e.Content = "Jane Doe"
	e.X, e.Y = 40, 40
	doc.Pages[0].Elements = append(doc.Pages[0].Elements, e)
	return doc
}

// Run прогоняет общий набор сценариев на свежем хранилище.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Run("SaveLoad", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		doc := Document("doc-1", "My CV")
		require.NoError(t, s.Save(ctx, doc))

		got, err := s.Load(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "My CV", got.Name)
		require.Len(t, got.Pages, 1)
		require.Len(t, got.Pages[0].Elements, 1)
		assert.Equal(t, "Jane Doe", got.Pages[0].Elements[0].Content)
		assert.Equal(t, doc.Pages[0].Elements[0].Style, got.Pages[0].Elements[0].Style)
		assert.False(t, got.UpdatedAt.IsZero())
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		doc := Document("doc-1", "Draft")
		require.NoError(t, s.Save(ctx, doc))
		doc.Name = "Final"
		doc.UpdatedAt = doc.UpdatedAt.Add(time.Second)
		require.NoError(t, s.Save(ctx, doc))

		got, err := s.Load(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "Final", got.Name)

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("LoadMissing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Load(context.Background(), "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		a := Document("a", "First")
		a.UpdatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		b := Document("b", "Second")
		b.UpdatedAt = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, s.Save(ctx, a))
		require.NoError(t, s.Save(ctx, b))

		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "b", list[0].ID)
		assert.Equal(t, "a", list[1].ID)
		assert.Equal(t, 1, list[0].Pages)
		assert.Equal(t, "Second", list[0].Name)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		s := newStore(t)
		list, err := s.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Save(ctx, Document("doc-1", "CV")))
		require.NoError(t, s.Delete(ctx, "doc-1"))

		_, err := s.Load(ctx, "doc-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, "doc-1"), storage.ErrNotFound)
	})

	t.Run("SaveRequiresID", func(t *testing.T) {
		s := newStore(t)
		assert.Error(t, s.Save(context.Background(), models.NewDocument("", "p", "x")))
	})
}
