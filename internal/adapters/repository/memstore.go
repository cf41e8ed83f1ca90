package repository

import (
	"context"

	"github.com/shezad-m/book-recommender/internal/domain/model"
	"github.com/shezad-m/book-recommender/pkg/metrics"
)

// MemoryStore implements Store with a map built once from the cleaned
// catalog. It never mutates after construction and is safe for concurrent
// readers.
type MemoryStore struct {
	books map[string]model.Book
}

// NewMemoryStore indexes the cleaned catalog by ISBN. When the catalog
// carries duplicate ISBNs the first occurrence wins, matching the
// row-order semantics of every other lookup in the system.
func NewMemoryStore(books []model.Book) *MemoryStore {
	m := &MemoryStore{
		books: make(map[string]model.Book, len(books)),
	}
	for _, b := range books {
		if _, ok := m.books[b.ISBN]; ok {
			continue
		}
		m.books[b.ISBN] = b
	}
	return m
}

// TitleOf returns the title for an ISBN, or ErrNotFound.
func (m *MemoryStore) TitleOf(ctx context.Context, isbn string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, ok := m.books[isbn]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return "", ErrNotFound
	}
	return b.Title, nil
}

// Get returns the full catalog record for an ISBN, or ErrNotFound.
func (m *MemoryStore) Get(ctx context.Context, isbn string) (model.Book, error) {
	if err := ctx.Err(); err != nil {
		return model.Book{}, err
	}
	b, ok := m.books[isbn]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Book{}, ErrNotFound
	}
	return b, nil
}

// Count returns the number of books in the catalog.
func (m *MemoryStore) Count(_ context.Context) int {
	return len(m.books)
}
