// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the console.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	loader "github.com/shezad-m/book-recommender/internal/adapters/dataset"
	repository "github.com/shezad-m/book-recommender/internal/adapters/repository"
	"github.com/shezad-m/book-recommender/internal/domain/dataset"
	"github.com/shezad-m/book-recommender/internal/domain/recommend"
	"github.com/shezad-m/book-recommender/internal/domain/types"
	"github.com/shezad-m/book-recommender/pkg/logger"
	"github.com/shezad-m/book-recommender/pkg/metrics"
)

// loadStats captures what startup loading and cleaning did to the tables.
type loadStats struct {
	rawBooks   int
	rawRatings int
	rawUsers   int

	books   int
	ratings int
	users   int

	skippedBooks   int
	skippedRatings int
	skippedUsers   int

	duration time.Duration
}

// Service owns the loaded dataset and the composed query surface over it.
// After Start returns, the catalog and engine are read-only and every query
// method is safe for concurrent use.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog repository.Store
	engine  *recommend.Engine

	// Configuration
	dataDir       string
	booksFile     string
	ratingsFile   string
	usersFile     string
	strictLoad    bool
	likeThreshold int
	minSupport    float64

	// State
	started bool
	stats   loadStats

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataDir sets the directory holding the three source CSV files.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithSourceFiles overrides the source table file names inside the data
// directory. Empty names keep the current value.
func WithSourceFiles(books, ratings, users string) Option {
	return func(s *Service) {
		if books != "" {
			s.booksFile = books
		}
		if ratings != "" {
			s.ratingsFile = ratings
		}
		if users != "" {
			s.usersFile = users
		}
	}
}

// WithStrictLoad makes malformed CSV rows fail startup instead of being
// skipped and counted.
func WithStrictLoad(strict bool) Option {
	return func(s *Service) {
		s.strictLoad = strict
	}
}

// WithLikeThreshold sets the score a rating must exceed to count as a like.
func WithLikeThreshold(threshold int) Option {
	return func(s *Service) {
		if threshold >= 0 && threshold <= 10 {
			s.likeThreshold = threshold
		}
	}
}

// WithMinSupport sets the similar-user support fraction a candidate must
// exceed to stay in the running.
func WithMinSupport(support float64) Option {
	return func(s *Service) {
		if support > 0 && support < 1 {
			s.minSupport = support
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:       "data",
		booksFile:     "Books.csv",
		ratingsFile:   "Ratings.csv",
		usersFile:     "Users.csv",
		likeThreshold: 8,
		minSupport:    0.05,
		logger:        nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset, cleans it, and builds the catalog store and the
// recommendation engine. It is the only phase that touches disk; afterwards
// all state is in memory and immutable.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommender service...",
		logger.String("dataDir", s.dataDir),
	)

	start := time.Now()
	tables, err := loader.New(s.dataDir,
		loader.WithBooksFile(s.booksFile),
		loader.WithRatingsFile(s.ratingsFile),
		loader.WithUsersFile(s.usersFile),
		loader.WithStrict(s.strictLoad),
	).LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	books, ratings, users := dataset.Clean(tables.Books, tables.Ratings, tables.Users)

	s.catalog = repository.NewMemoryStore(books)
	s.engine = recommend.New(ratings,
		recommend.WithLikeThreshold(s.likeThreshold),
		recommend.WithMinSupport(s.minSupport),
	)

	s.stats = loadStats{
		rawBooks:       len(tables.Books),
		rawRatings:     len(tables.Ratings),
		rawUsers:       len(tables.Users),
		books:          len(books),
		ratings:        len(ratings),
		users:          len(users),
		skippedBooks:   tables.SkippedBooks,
		skippedRatings: tables.SkippedRatings,
		skippedUsers:   tables.SkippedUsers,
		duration:       time.Since(start),
	}
	s.recordLoadMetrics(ctx)

	s.started = true
	s.logger.Info(ctx, "recommender service started",
		logger.Int("books", s.stats.books),
		logger.Int("ratings", s.stats.ratings),
		logger.Int("users", s.stats.users),
		logger.Int("likeRows", s.engine.Size()),
		logger.Int("likedBooks", s.engine.LikedBooks()),
		logger.Duration("loadTime", s.stats.duration),
	)

	return nil
}

// recordLoadMetrics publishes the startup load and clean counters.
// Callers hold s.mu.
func (s *Service) recordLoadMetrics(ctx context.Context) {
	metrics.UpdateDatasetRowsLoaded("books", s.stats.books)
	metrics.UpdateDatasetRowsLoaded("ratings", s.stats.ratings)
	metrics.UpdateDatasetRowsLoaded("users", s.stats.users)

	metrics.RecordDatasetRowsDropped("books", "malformed", s.stats.skippedBooks)
	metrics.RecordDatasetRowsDropped("ratings", "malformed", s.stats.skippedRatings)
	metrics.RecordDatasetRowsDropped("users", "malformed", s.stats.skippedUsers)
	metrics.RecordDatasetRowsDropped("books", "missing_fields", s.stats.rawBooks-s.stats.books)
	metrics.RecordDatasetRowsDropped("ratings", "orphaned", s.stats.rawRatings-s.stats.ratings)

	metrics.RecordDatasetLoadDuration(float64(s.stats.duration.Milliseconds()))
	metrics.UpdateCatalogBooks(s.catalog.Count(ctx))
	metrics.UpdateEngineLikeRows(s.engine.Size())
	metrics.UpdateEngineLikedBooks(s.engine.LikedBooks())
}

// Stop releases the loaded dataset.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping recommender service...")

	s.catalog = nil
	s.engine = nil
	s.started = false

	s.logger.Info(context.Background(), "recommender service stopped")
}

// Ready reports whether the dataset finished loading.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// TitleOf returns the title of the book with the given ISBN.
// Unknown ISBNs fail with repository.ErrNotFound.
func (s *Service) TitleOf(ctx context.Context, isbn string) (string, error) {
	start := time.Now()
	title, err := s.catalog.TitleOf(ctx, isbn)
	metrics.RecordTitleLookup()
	metrics.RecordTitleLookupLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return "", err
	}
	return title, nil
}

// GetBook returns the full catalog record for the given ISBN.
// Unknown ISBNs fail with repository.ErrNotFound.
func (s *Service) GetBook(ctx context.Context, isbn string) (types.BookDetail, error) {
	b, err := s.catalog.Get(ctx, isbn)
	if err != nil {
		return types.BookDetail{}, err
	}
	return types.BookDetail{
		ISBN:      b.ISBN,
		Title:     b.Title,
		Author:    b.Author,
		Year:      b.Year,
		Publisher: b.Publisher,
	}, nil
}

// Recommend returns the highest scoring co-liked book for the target ISBN.
// The target must exist in the catalog; unknown ISBNs fail with
// repository.ErrNotFound before any scoring runs, so callers can tell
// "unknown book" apart from "no recommendation possible".
func (s *Service) Recommend(ctx context.Context, isbn string) (types.Recommendation, error) {
	start := time.Now()

	if _, err := s.catalog.Get(ctx, isbn); err != nil {
		metrics.RecordRecommendation(outcomeFromErr(err))
		return types.Recommendation{}, err
	}

	winner, err := s.engine.Recommend(ctx, isbn)
	if err != nil {
		metrics.RecordRecommendation(outcomeFromErr(err))
		metrics.RecordRecommendLatency(float64(time.Since(start).Milliseconds()))
		return types.Recommendation{}, err
	}

	// Cleaning guarantees every rated ISBN is in the catalog, so the
	// winner always resolves.
	title, err := s.catalog.TitleOf(ctx, winner)
	if err != nil {
		metrics.RecordRecommendation(outcomeFromErr(err))
		return types.Recommendation{}, err
	}

	metrics.RecordRecommendation("ok")
	metrics.RecordRecommendLatency(float64(time.Since(start).Milliseconds()))
	return types.Recommendation{ISBN: winner, Title: title}, nil
}

// TopBooks returns the n most liked books with their titles.
func (s *Service) TopBooks(ctx context.Context, n int) ([]types.PopularBook, error) {
	popular, err := s.engine.TopLiked(ctx, n)
	if err != nil {
		return nil, err
	}

	// Convert to API format
	books := make([]types.PopularBook, len(popular))
	for i, p := range popular {
		title, err := s.catalog.TitleOf(ctx, p.ISBN)
		if err != nil {
			return nil, err
		}
		books[i] = types.PopularBook{
			ISBN:   p.ISBN,
			Title:  title,
			Likers: p.Likers,
		}
	}

	return books, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"dataDir":       s.dataDir,
		"likeThreshold": s.likeThreshold,
		"minSupport":    s.minSupport,
	}

	if s.started {
		totalBooks := s.catalog.Count(ctx)

		stats["catalogBooks"] = totalBooks
		stats["ratings"] = s.stats.ratings
		stats["users"] = s.stats.users
		stats["likeRows"] = s.engine.Size()
		stats["likedBooks"] = s.engine.LikedBooks()
		stats["droppedBooks"] = s.stats.rawBooks - s.stats.books
		stats["droppedRatings"] = s.stats.rawRatings - s.stats.ratings
		stats["skippedRows"] = s.stats.skippedBooks + s.stats.skippedRatings + s.stats.skippedUsers
		stats["loadMillis"] = s.stats.duration.Milliseconds()

		// Update metrics
		metrics.UpdateCatalogBooks(totalBooks)
		metrics.UpdateEngineLikeRows(s.engine.Size())
		metrics.UpdateEngineLikedBooks(s.engine.LikedBooks())
	}

	return stats
}

// outcomeFromErr maps a query error to a recommendation outcome label.
func outcomeFromErr(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, recommend.ErrNoSimilarUsers):
		return "no_similar_users"
	case errors.Is(err, recommend.ErrNoCandidates):
		return "no_candidates"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
