// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"
)

// RecommendationDependencies defines the interface for similarity queries.
type RecommendationDependencies interface {
	TitleOf(ctx context.Context, isbn string) (string, error)
	Recommend(ctx context.Context, isbn string) (Recommendation, error)
}

// RecommendationsHandler handles similarity query requests.
type RecommendationsHandler struct {
	deps RecommendationDependencies
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps}
}

// HandleGetRecommendation handles GET /recommendations/{isbn} requests.
func (h *RecommendationsHandler) HandleGetRecommendation(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_recommendation"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /recommendations/
	isbn := strings.TrimPrefix(r.URL.Path, "/recommendations/")
	if isbn == "" || strings.Contains(isbn, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	// Resolving the title first also surfaces unknown ISBNs as not_found
	// before any scoring work happens.
	title, err := h.deps.TitleOf(r.Context(), isbn)
	if err != nil {
		writeQueryError(w, op, err)
		return
	}
	rec, err := h.deps.Recommend(r.Context(), isbn)
	if err != nil {
		writeQueryError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationResponse{
		Query:          bookSummary{ISBN: isbn, Title: title},
		Recommendation: bookSummary{ISBN: rec.ISBN, Title: rec.Title},
	})
}
