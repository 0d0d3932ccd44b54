package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"cv-designer/internal/designer/models"
	"cv-designer/internal/storage"

	"github.com/redis/go-redis/v9"
)

const (
	docKeyPrefix = "cv:doc:" // документ целиком: cv:doc:{id}
	docIndexKey  = "cv:docs" // множество id, только без нижележащего хранилища
	DefaultTTL   = 24 * time.Hour
)

// ============================================================
// Redis Store
// ============================================================

// Store кэширует документы в Redis поверх другого хранилища
// (read-through при чтении, write-through при записи).
// Без нижележащего хранилища сам служит хранилищем с TTL.
type Store struct {
	client *redis.Client
	next   storage.Store
	ttl    time.Duration
}

func New(client *redis.Client, next storage.Store, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, next: next, ttl: ttl}
}

func (s *Store) Save(ctx context.Context, doc *models.Document) error {
	storage.Touch(doc)
	if s.next != nil {
		if err := s.next.Save(ctx, doc); err != nil {
			return err
		}
	}

	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}

	if s.next != nil {
		if err := s.client.Set(ctx, s.docKey(doc.ID), data, s.ttl).Err(); err != nil {
			log.Printf("[STORE] cache set %s failed: %v", doc.ID, err)
		}
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.docKey(doc.ID), data, s.ttl)
	pipe.SAdd(ctx, docIndexKey, doc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*models.Document, error) {
	data, err := s.client.Get(ctx, s.docKey(id)).Bytes()
	switch {
	case err == nil:
		return storage.Decode(data)
	case errors.Is(err, redis.Nil):
		if s.next == nil {
			return nil, storage.ErrNotFound
		}
	default:
		if s.next == nil {
			return nil, fmt.Errorf("failed to get document: %w", err)
		}
		log.Printf("[STORE] cache get %s failed: %v", id, err)
	}

	doc, err := s.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := storage.Encode(doc); err == nil {
		if err := s.client.Set(ctx, s.docKey(id), data, s.ttl).Err(); err != nil {
			log.Printf("[STORE] cache fill %s failed: %v", id, err)
		}
	}
	return doc, nil
}

func (s *Store) List(ctx context.Context) ([]storage.Summary, error) {
	if s.next != nil {
		return s.next.List(ctx)
	}

	ids, err := s.client.SMembers(ctx, docIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	out := []storage.Summary{}
	for _, id := range ids {
		doc, err := s.Load(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			// ключ истёк по TTL
			s.client.SRem(ctx, docIndexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, storage.SummaryOf(doc))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.docKey(id)).Result()
	if err != nil {
		if s.next == nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
		log.Printf("[STORE] cache del %s failed: %v", id, err)
	}

	if s.next != nil {
		return s.next.Delete(ctx, id)
	}

	s.client.SRem(ctx, docIndexKey, id)
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Ping проверяет Redis и нижележащее хранилище, если оно это умеет.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	if p, ok := s.next.(storage.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Store) docKey(id string) string {
	return docKeyPrefix + id
}
