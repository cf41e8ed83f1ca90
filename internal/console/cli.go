// Package console implements the interactive recommendation prompt.
package console

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shezad-m/book-recommender/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging initializes the logger and, when logFile is set, tees the
// standard log output to it. The interactive prompt itself always writes
// to stdout untouched.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		return nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return nil
}

// ShowHelp prints usage information for the console.
func ShowHelp() {
	os.Stdout.WriteString(`Book Recommender Console
========================

An interactive prompt that answers "people who liked this also liked"
queries straight from the Book-Crossing CSV tables.

Usage:
  go run cmd/console/main.go [options]

Options:
  -data string
        Directory holding the dataset tables (default "data")
  -books string
        Books table file name (default "Books.csv")
  -ratings string
        Ratings table file name (default "Ratings.csv")
  -users string
        Users table file name (default "Users.csv")
  -strict
        Fail on the first malformed dataset row instead of skipping
  -log string
        Also write log output to this file
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  # Run against the tables in ./data
  go run cmd/console/main.go

  # Run against a Kaggle dump with the classic file names
  go run cmd/console/main.go -data ~/Downloads/bx -ratings BX-Book-Ratings.csv
`)
}
