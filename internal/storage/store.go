package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cv-designer/internal/designer/models"
)

// ============================================================
// Persistence contract
// ============================================================

// ErrNotFound: документа с таким id нет в хранилище.
var ErrNotFound = errors.New("document not found")

// Summary: строка списка документов.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Pages     int       `json:"pages"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store сохраняет и загружает документы целиком. Ядро редактора о нём не знает.
type Store interface {
	Save(ctx context.Context, doc *models.Document) error
	Load(ctx context.Context, id string) (*models.Document, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
}

// Pinger реализуют хранилища, которые умеют проверять соединение (readiness).
type Pinger interface {
	Ping(ctx context.Context) error
}

func SummaryOf(doc *models.Document) Summary {
	return Summary{ID: doc.ID, Name: doc.Name, Pages: len(doc.Pages), UpdatedAt: doc.UpdatedAt}
}

// Encode сериализует документ в JSON-дерево Pages -> Elements.
func Encode(doc *models.Document) ([]byte, error) {
	if doc == nil || doc.ID == "" {
		return nil, fmt.Errorf("document id required")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &doc, nil
}

// Touch проставляет время изменения, если оно не задано.
func Touch(doc *models.Document) {
	if doc != nil && doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
}
