package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cv-designer/internal/designer/models"
	"cv-designer/internal/storage"
)

// ============================================================
// SQLite Repository
// ============================================================

//go:embed migrations/001_init_documents.sql
var initMigration string

const timeLayout = time.RFC3339Nano

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет миграции.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (r *Repository) Save(ctx context.Context, doc *models.Document) error {
	storage.Touch(doc)
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}
	now := doc.UpdatedAt.UTC().Format(timeLayout)

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO documents (id, name, pages, data, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            pages = excluded.pages,
            data = excluded.data,
            updated_at = excluded.updated_at
    `, doc.ID, doc.Name, len(doc.Pages), string(data), now, now)
	if err != nil {
		return fmt.Errorf("save document %s: %w", doc.ID, err)
	}
	return nil
}

func (r *Repository) Load(ctx context.Context, id string) (*models.Document, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT data, updated_at
        FROM documents
        WHERE id = ?
    `, id)

	var data, updated string
	if err := row.Scan(&data, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("load document %s: %w", id, err)
	}

	doc, err := storage.Decode([]byte(data))
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse(timeLayout, updated); err == nil {
		doc.UpdatedAt = t
	}
	return doc, nil
}

func (r *Repository) List(ctx context.Context) ([]storage.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, pages, updated_at
        FROM documents
        ORDER BY updated_at DESC, id
    `)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := []storage.Summary{}
	for rows.Next() {
		var s storage.Summary
		var updated string
		if err := rows.Scan(&s.ID, &s.Name, &s.Pages, &updated); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		s.UpdatedAt, _ = time.Parse(timeLayout, updated)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, initMigration); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
