// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shezad-m/book-recommender/internal/adapters/repository"
	"github.com/shezad-m/book-recommender/internal/domain/recommend"
	"github.com/shezad-m/book-recommender/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations expose the loaded catalog.
	TitleOf(ctx context.Context, isbn string) (string, error)
	GetBook(ctx context.Context, isbn string) (BookDetail, error)

	// Read operations expose rating-derived data.
	Recommend(ctx context.Context, isbn string) (Recommendation, error)
	TopBooks(ctx context.Context, n int) ([]PopularBook, error)
}

// Read shapes mirrored from the domain layer.
type (
	BookDetail     = types.BookDetail
	Recommendation = types.Recommendation
	PopularBook    = types.PopularBook
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	booksHandler           *BooksHandler
	recommendationsHandler *RecommendationsHandler
	dashboardHandler       *dashboardHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// limit query parameter accepted by the popular-books listing.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		booksHandler:           NewBooksHandler(deps, maxLimit),
		recommendationsHandler: NewRecommendationsHandler(deps),
		dashboardHandler:       newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", RequestIDMiddleware(MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", RequestIDMiddleware(MetricsMiddleware(s.statsHandler.HandleStats, "stats")))
	mux.HandleFunc("/books", RequestIDMiddleware(MetricsMiddleware(s.booksHandler.HandleListBooks, "books")))
	mux.HandleFunc("/books/", RequestIDMiddleware(MetricsMiddleware(s.booksHandler.HandleGetBook, "book_detail")))
	mux.HandleFunc("/recommendations/", RequestIDMiddleware(MetricsMiddleware(s.recommendationsHandler.HandleGetRecommendation, "recommendations")))
}

// bookSummary is the identifying pair used inside composite responses.
type bookSummary struct {
	ISBN  string `json:"isbn"`
	Title string `json:"title"`
}

// recommendationResponse mirrors the OpenAPI schema for GET /recommendations/{isbn}.
type recommendationResponse struct {
	Query          bookSummary `json:"query"`
	Recommendation bookSummary `json:"recommendation"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeQueryError translates upstream query failures to their HTTP shape.
// The recoverable kinds map to 404 with a distinguishing code; everything
// else is a 500.
func writeQueryError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, recommend.ErrNoSimilarUsers):
		writeError(w, http.StatusNotFound, "no_similar_users", err)
	case errors.Is(err, recommend.ErrNoCandidates):
		writeError(w, http.StatusNotFound, "no_candidates", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
