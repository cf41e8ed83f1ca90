package testqueries

import "time"

// Config holds configuration for the query test
type Config struct {
	BaseURL     string        // Base URL of the service
	DataDir     string        // Directory holding the dataset tables
	RatingsFile string        // Ratings table file name
	NumISBNs    int           // Number of distinct ISBNs to query
	Repeats     int           // Times each ISBN is queried
	TopN        int           // Number of popular books to fetch
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for results
	LogFile     string        // Log file for test output
	Verbose     bool          // Enable verbose logging
}

// QueryPlan is one ISBN scheduled for querying, tagged for log correlation.
type QueryPlan struct {
	QueryID string `json:"query_id"`
	ISBN    string `json:"isbn"`
	Likers  int    `json:"likers"`
}

// BookRef mirrors the isbn and title pair in API responses.
type BookRef struct {
	ISBN  string `json:"isbn"`
	Title string `json:"title"`
}

// RecommendationResponse mirrors the response of GET /recommendations/{isbn}.
type RecommendationResponse struct {
	Query          BookRef `json:"query"`
	Recommendation BookRef `json:"recommendation"`
}

// PopularBook mirrors one entry of GET /books?limit=N.
type PopularBook struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Likers int    `json:"likers"`
}

// ErrorResponse mirrors the API error shape.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// QueryResult is the outcome of one submitted query.
type QueryResult struct {
	QueryID          string `json:"query_id"`
	ISBN             string `json:"isbn"`
	Attempt          int    `json:"attempt"`
	Outcome          string `json:"outcome"`
	QueryTitle       string `json:"query_title,omitempty"`
	RecommendedISBN  string `json:"recommended_isbn,omitempty"`
	RecommendedTitle string `json:"recommended_title,omitempty"`
	DurationMs       int64  `json:"duration_ms"`
}

// Stats holds test statistics
type Stats struct {
	ISBNsPlanned     int
	QueriesSubmitted int
	Recommended      int
	NoSimilarUsers   int
	NoCandidates     int
	NotFound         int
	Failed           int
	PopularEntries   int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
