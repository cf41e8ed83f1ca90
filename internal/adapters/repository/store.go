// Package repository defines the catalog store interface and errors.
package repository

import (
	"context"

	"github.com/shezad-m/book-recommender/internal/domain/model"
)

// Store provides read access to the cleaned book catalog.
type Store interface {
	// TitleOf returns the title for an ISBN.
	// Returns ErrNotFound if the book is unknown.
	TitleOf(ctx context.Context, isbn string) (string, error)

	// Get returns the full catalog record for an ISBN.
	// Returns ErrNotFound if the book is unknown.
	Get(ctx context.Context, isbn string) (model.Book, error)

	// Count returns the number of books in the catalog.
	Count(ctx context.Context) int
}
