// Package recommend implements item-to-item collaborative filtering over
// the cleaned ratings table. A book counts as liked when its rating score
// strictly exceeds the like threshold; the engine indexes every like row
// once at construction and answers queries by exact counting, so results
// are a deterministic function of the table and the target.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/shezad-m/book-recommender/internal/domain/model"
)

// Default recommendation configuration constants.
const (
	defaultLikeThreshold = 8
	defaultMinSupport    = 0.05
)

// likeRow is one like observation, kept in ratings-table order.
type likeRow struct {
	userID int
	isbn   string
}

// scoredBook pairs a candidate with its lift score.
type scoredBook struct {
	isbn  string
	score float64
}

// Popularity pairs a book with its distinct-liker count.
type Popularity struct {
	ISBN   string
	Likers int
}

// Recommender serves similarity queries over an immutable like index.
type Recommender interface {
	// Recommend returns the best matching other book for the target,
	// honoring ctx for cancellation.
	Recommend(ctx context.Context, targetISBN string) (string, error)
	// TopLiked returns the n books with the most distinct likers.
	TopLiked(ctx context.Context, n int) ([]Popularity, error)
}

// Engine implements Recommender. It never mutates after construction and
// is safe for concurrent readers.
type Engine struct {
	likeThreshold int
	minSupport    float64

	// Like rows in ratings-table order. The tie-break contract of
	// Recommend depends on this ordering.
	likes []likeRow
	// Distinct likers per book.
	likersByISBN map[string]map[int]struct{}
	// Books ordered by liker count descending, ties by ISBN ascending.
	popular []Popularity
}

// New builds an Engine from the cleaned ratings table. The table is
// scanned once; duplicate (user, book) rows are indexed as independent
// observations.
func New(ratings []model.Rating, opts ...Option) *Engine {
	e := &Engine{
		likeThreshold: defaultLikeThreshold,
		minSupport:    defaultMinSupport,
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	e.likes = make([]likeRow, 0, len(ratings)/4)
	e.likersByISBN = make(map[string]map[int]struct{})
	for _, r := range ratings {
		if r.Score <= e.likeThreshold {
			continue
		}
		e.likes = append(e.likes, likeRow{userID: r.UserID, isbn: r.ISBN})
		likers, ok := e.likersByISBN[r.ISBN]
		if !ok {
			likers = make(map[int]struct{})
			e.likersByISBN[r.ISBN] = likers
		}
		likers[r.UserID] = struct{}{}
	}

	e.popular = buildPopular(e.likersByISBN)

	return e
}

// Recommend returns the ISBN of the book most similar to the target.
//
// A candidate is any book liked by a user who also liked the target; it
// survives when the fraction of those users sharing it strictly exceeds
// the support threshold. Candidates are ranked by the lift of that
// fraction over the candidate's like rate in the whole candidate
// population, and exact ties keep the order in which candidates were
// first encountered while scanning the like rows in table order. The
// target itself is excluded only after ranking.
//
// Fails with ErrNoSimilarUsers when nobody liked the target (including
// when the target is not in the table at all) and with ErrNoCandidates
// when no other book clears the threshold.
func (e *Engine) Recommend(ctx context.Context, targetISBN string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("recommend cancelled: %w", err)
	}

	similarUsers := e.likersByISBN[targetISBN]
	if len(similarUsers) == 0 {
		return "", ErrNoSimilarUsers
	}

	// First pass: count like rows per book among the similar users,
	// recording each candidate the first time it appears. Duplicate rows
	// count every time.
	counts := make(map[string]int)
	order := make([]string, 0, 64)
	for _, row := range e.likes {
		if _, ok := similarUsers[row.userID]; !ok {
			continue
		}
		if counts[row.isbn] == 0 {
			order = append(order, row.isbn)
		}
		counts[row.isbn]++
	}

	similarTotal := float64(len(similarUsers))
	candidates := make([]string, 0, len(order))
	for _, isbn := range order {
		if float64(counts[isbn])/similarTotal > e.minSupport {
			candidates = append(candidates, isbn)
		}
	}
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("recommend cancelled: %w", err)
	}

	// Second pass: like rows for the candidate set across ALL users, and
	// the distinct users producing them.
	candidateSet := make(map[string]struct{}, len(candidates))
	for _, isbn := range candidates {
		candidateSet[isbn] = struct{}{}
	}
	globalCounts := make(map[string]int, len(candidates))
	globalUsers := make(map[int]struct{})
	for _, row := range e.likes {
		if _, ok := candidateSet[row.isbn]; !ok {
			continue
		}
		globalCounts[row.isbn]++
		globalUsers[row.userID] = struct{}{}
	}

	// Score each candidate by lift. globalTotal cannot be zero here:
	// every candidate carries at least one like row.
	globalTotal := float64(len(globalUsers))
	scored := make([]scoredBook, 0, len(candidates))
	for _, isbn := range candidates {
		similarFraction := float64(counts[isbn]) / similarTotal
		globalFraction := float64(globalCounts[isbn]) / globalTotal
		scored = append(scored, scoredBook{isbn: isbn, score: similarFraction / globalFraction})
	}

	// Stable sort keeps first-encounter order on exact ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	// The target legitimately ranks in its own candidate set; skip it.
	for _, s := range scored {
		if s.isbn != targetISBN {
			return s.isbn, nil
		}
	}
	return "", ErrNoCandidates
}

// TopLiked returns up to n books ordered by distinct-liker count
// descending, ties by ISBN ascending.
func (e *Engine) TopLiked(ctx context.Context, n int) ([]Popularity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("top liked cancelled: %w", err)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	if n > len(e.popular) {
		n = len(e.popular)
	}
	out := make([]Popularity, n)
	copy(out, e.popular)
	return out, nil
}

// Size returns the number of indexed like rows.
func (e *Engine) Size() int {
	return len(e.likes)
}

// LikedBooks returns the number of distinct books with at least one like.
func (e *Engine) LikedBooks() int {
	return len(e.likersByISBN)
}

func buildPopular(likersByISBN map[string]map[int]struct{}) []Popularity {
	popular := make([]Popularity, 0, len(likersByISBN))
	for isbn, likers := range likersByISBN {
		popular = append(popular, Popularity{ISBN: isbn, Likers: len(likers)})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Likers != popular[j].Likers {
			return popular[i].Likers > popular[j].Likers
		}
		return popular[i].ISBN < popular[j].ISBN
	})
	return popular
}
