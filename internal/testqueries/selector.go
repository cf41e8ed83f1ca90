package testqueries

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/shezad-m/book-recommender/internal/adapters/dataset"
	"github.com/shezad-m/book-recommender/pkg/logger"
)

// selectQueryISBNs loads the raw ratings table and picks the most liked
// ISBNs as query targets. Ranking locally against the same table the
// service loaded makes the popular-listing cross-check meaningful.
func selectQueryISBNs(ctx context.Context, config *Config, stats *Stats) ([]QueryPlan, error) {
	logger.Get().Info(ctx, "selecting query ISBNs from ratings",
		logger.String("dataDir", config.DataDir),
		logger.String("ratingsFile", config.RatingsFile),
		logger.Int("numISBNs", config.NumISBNs))

	loader := dataset.New(config.DataDir, dataset.WithRatingsFile(config.RatingsFile))
	rows, skipped, err := loader.LoadRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("ratings table %s is empty", config.RatingsFile)
	}

	// Count distinct likers per ISBN, keeping first-like order for ties.
	likers := make(map[string]map[int]struct{})
	order := make([]string, 0)
	for _, r := range rows {
		if r.Score <= likeThreshold {
			continue
		}
		set, ok := likers[r.ISBN]
		if !ok {
			set = make(map[int]struct{})
			likers[r.ISBN] = set
			order = append(order, r.ISBN)
		}
		set[r.UserID] = struct{}{}
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("no rating in %s clears the like threshold", config.RatingsFile)
	}

	plans := make([]QueryPlan, 0, len(order))
	for _, isbn := range order {
		plans = append(plans, QueryPlan{ISBN: isbn, Likers: len(likers[isbn])})
	}
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].Likers > plans[j].Likers
	})
	if len(plans) > config.NumISBNs {
		plans = plans[:config.NumISBNs]
	}

	// Tag each planned query for log correlation.
	for i := range plans {
		plans[i].QueryID = uuid.New().String()
	}

	stats.ISBNsPlanned = len(plans)
	logger.Get().Info(ctx, "selected query ISBNs",
		logger.Int("count", len(plans)),
		logger.Int("likedISBNs", len(order)),
		logger.Int("skippedRows", skipped),
		logger.Int("topLikers", plans[0].Likers))

	return plans, nil
}
