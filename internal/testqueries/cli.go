package testqueries

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/shezad-m/book-recommender/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "query_test_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the query test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Book Recommender Query Test Tool
================================

A concurrent tool for hammering a running book recommender with
recommendation queries and verifying the answers.

Usage:
  go run cmd/test-queries/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -data string
        Directory holding the dataset tables (default "data")
  -ratings string
        Ratings table file name used to pick query ISBNs (default "Ratings.csv")
  -isbns int
        Number of distinct ISBNs to query (default 200)
  -repeats int
        Times each ISBN is queried, for determinism checking (default 5)
  -top int
        Number of entries to fetch from the popular listing (default 50)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for query results (default: query_results_TIMESTAMP.json)
  -log string
        Log file for test output (default: query_test_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/test-queries/main.go

  # Hammer harder
  go run cmd/test-queries/main.go -isbns 1000 -repeats 10 -workers 32

  # Test against a Kaggle dump
  go run cmd/test-queries/main.go -data ~/bx -ratings BX-Book-Ratings.csv
`)
}
