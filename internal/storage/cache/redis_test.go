package cache

import (
	"context"
	"testing"
	"time"

	"cv-designer/internal/storage"
	"cv-designer/internal/storage/filestore"
	"cv-designer/internal/storage/storagetest"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestStandaloneContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		_, client := setupTestRedis(t)
		return New(client, nil, time.Hour)
	})
}

func TestCachedContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		_, client := setupTestRedis(t)
		return New(client, filestore.New(t.TempDir()), time.Hour)
	})
}

func TestSaveWritesThrough(t *testing.T) {
	mr, client := setupTestRedis(t)
	next := filestore.New(t.TempDir())
	s := New(client, next, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, storagetest.Document("doc-1", "CV")))

	assert.True(t, mr.Exists("cv:doc:doc-1"))
	assert.Equal(t, time.Hour, mr.TTL("cv:doc:doc-1"))
	_, err := next.Load(ctx, "doc-1")
	assert.NoError(t, err)
}

func TestLoadFillsCache(t *testing.T) {
	mr, client := setupTestRedis(t)
	next := filestore.New(t.TempDir())
	s := New(client, next, time.Hour)
	ctx := context.Background()

	require.NoError(t, next.Save(ctx, storagetest.Document("doc-1", "CV")))
	require.False(t, mr.Exists("cv:doc:doc-1"))

	doc, err := s.Load(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "CV", doc.Name)
	assert.True(t, mr.Exists("cv:doc:doc-1"))
}

func TestLoadServesFromCache(t *testing.T) {
	_, client := setupTestRedis(t)
	root := t.TempDir()
	s := New(client, filestore.New(root), time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, storagetest.Document("doc-1", "CV")))
	// удаляем мимо кэша
	require.NoError(t, filestore.New(root).Delete(ctx, "doc-1"))

	doc, err := s.Load(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "CV", doc.Name)
}

func TestLoadSurvivesRedisOutage(t *testing.T) {
	mr, client := setupTestRedis(t)
	next := filestore.New(t.TempDir())
	s := New(client, next, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, storagetest.Document("doc-1", "CV")))
	mr.Close()

	doc, err := s.Load(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "CV", doc.Name)
	assert.Error(t, s.Ping(ctx))
}

func TestStandaloneExpiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := New(client, nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, storagetest.Document("doc-1", "CV")))
	mr.FastForward(2 * time.Minute)

	_, err := s.Load(ctx, "doc-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	members, _ := mr.Members(docIndexKey)
	assert.Empty(t, members)
}

func TestDefaultTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := New(client, nil, 0)

	require.NoError(t, s.Save(context.Background(), storagetest.Document("doc-1", "CV")))
	assert.Equal(t, DefaultTTL, mr.TTL("cv:doc:doc-1"))
}

func TestPing(t *testing.T) {
	_, client := setupTestRedis(t)
	assert.NoError(t, New(client, nil, 0).Ping(context.Background()))
}
