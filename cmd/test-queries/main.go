package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/shezad-m/book-recommender/internal/testqueries"
)

// Default configuration constants.
const (
	defaultNumISBNs    = 200
	defaultRepeats     = 5
	defaultTopN        = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		dataDir     = flag.String("data", "data", "Directory holding the dataset tables")
		ratingsFile = flag.String("ratings", "Ratings.csv", "Ratings table file name used to pick query ISBNs")
		numISBNs    = flag.Int("isbns", defaultNumISBNs, "Number of distinct ISBNs to query")
		repeats     = flag.Int("repeats", defaultRepeats, "Times each ISBN is queried, for determinism checking")
		topN        = flag.Int("top", defaultTopN, "Number of entries to fetch from the popular listing")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Output file for query results (default: query_results_TIMESTAMP.json)")
		logFile     = flag.String("log", "", "Log file for test output (default: query_test_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testqueries.ShowHelp()
		return
	}

	// Setup logging
	if err := testqueries.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testqueries.Config{
		BaseURL:     *baseURL,
		DataDir:     *dataDir,
		RatingsFile: *ratingsFile,
		NumISBNs:    *numISBNs,
		Repeats:     *repeats,
		TopN:        *topN,
		Workers:     *workers,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	// Run the test
	if err := testqueries.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
