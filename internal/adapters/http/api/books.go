// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shezad-m/book-recommender/internal/adapters/repository"
)

// BookDependencies defines the interface for catalog read operations
type BookDependencies interface {
	GetBook(ctx context.Context, isbn string) (BookDetail, error)
	TopBooks(ctx context.Context, n int) ([]PopularBook, error)
}

// BooksHandler handles catalog requests
type BooksHandler struct {
	deps     BookDependencies
	maxLimit int
}

// NewBooksHandler creates a new books handler
func NewBooksHandler(deps BookDependencies, maxLimit int) *BooksHandler {
	return &BooksHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleListBooks handles GET /books?limit=N requests
func (h *BooksHandler) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_books"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	books, err := h.deps.TopBooks(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// HandleGetBook handles GET /books/{isbn} requests.
func (h *BooksHandler) HandleGetBook(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_book"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /books/
	isbn := strings.TrimPrefix(r.URL.Path, "/books/")
	if isbn == "" || strings.Contains(isbn, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	book, err := h.deps.GetBook(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, book)
}
