package filestore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cv-designer/internal/designer/models"
	"cv-designer/internal/storage"
)

// ============================================================
// File Storage
// ============================================================

// Store хранит каждый документ в собственном каталоге: <root>/<id>/document.json.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) DocDir(id string) string {
	return filepath.Join(s.root, id)
}

func (s *Store) DocumentPath(id string) string {
	return filepath.Join(s.DocDir(id), "document.json")
}

func (s *Store) ExportsDir(id string) string {
	return filepath.Join(s.DocDir(id), "exports")
}

func (s *Store) ExportPath(id, filename string) string {
	return filepath.Join(s.ExportsDir(id), filename)
}

func (s *Store) EnsureDir(id string) error {
	if err := os.MkdirAll(s.DocDir(id), 0o755); err != nil {
		return fmt.Errorf("mkdir document dir: %w", err)
	}
	return nil
}

func (s *Store) EnsureExportsDir(id string) error {
	if err := os.MkdirAll(s.ExportsDir(id), 0o755); err != nil {
		return fmt.Errorf("mkdir exports dir: %w", err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, doc *models.Document) error {
	storage.Touch(doc)
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}
	if err := checkID(doc.ID); err != nil {
		return err
	}
	if err := s.EnsureDir(doc.ID); err != nil {
		return err
	}
	return writeFile(s.DocumentPath(doc.ID), data)
}

func (s *Store) Load(ctx context.Context, id string) (*models.Document, error) {
	if err := checkID(id); err != nil {
		return nil, storage.ErrNotFound
	}
	data, err := os.ReadFile(s.DocumentPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read document %s: %w", id, err)
	}
	return storage.Decode(data)
}

func (s *Store) List(ctx context.Context) ([]storage.Summary, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []storage.Summary{}, nil
		}
		return nil, fmt.Errorf("read store root: %w", err)
	}

	out := []storage.Summary{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		doc, err := s.Load(ctx, entry.Name())
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Printf("[STORE] skip %s: %v", entry.Name(), err)
			continue
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

// Delete удаляет каталог документа вместе с экспортами.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return storage.ErrNotFound
	}
	if _, err := os.Stat(s.DocumentPath(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("stat document %s: %w", id, err)
	}
	if err := os.RemoveAll(s.DocDir(id)); err != nil {
		return fmt.Errorf("remove document %s: %w", id, err)
	}
	return nil
}

// SaveExport кладёт готовый файл экспорта рядом с документом.
func (s *Store) SaveExport(id, filename string, data []byte) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}
	if filepath.Base(filename) != filename {
		return "", fmt.Errorf("invalid export name %q", filename)
	}
	if err := s.EnsureExportsDir(id); err != nil {
		return "", err
	}
	target := s.ExportPath(id, filename)
	if err := writeFile(target, data); err != nil {
		return "", err
	}
	return target, nil
}

// Ping проверяет, что корень доступен для записи.
func (s *Store) Ping(ctx context.Context) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir store root: %w", err)
	}
	return nil
}

// writeFile пишет через временный файл, чтобы читатель не увидел половину JSON.
func writeFile(target string, data []byte) error {
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(target), err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(target), err)
	}
	return nil
}

func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid document id %q", id)
	}
	return nil
}
