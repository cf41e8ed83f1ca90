// Package config defines service configuration and loading.
//
// Configuration is layered: compiled-in defaults, then an optional YAML
// file named by BOOKREC_CONFIG, then BOOKREC_-prefixed environment
// variables. Later layers win.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir is the directory holding the three source CSV files.
	DataDir string `koanf:"data_dir"`

	// BooksFile, RatingsFile, and UsersFile name the source tables
	// inside DataDir.
	BooksFile   string `koanf:"books_file"`
	RatingsFile string `koanf:"ratings_file"`
	UsersFile   string `koanf:"users_file"`

	// StrictLoad makes malformed CSV rows fail startup instead of
	// being skipped and counted.
	StrictLoad bool `koanf:"strict_load"`

	// LikeThreshold is the score a rating must exceed to count as a like.
	LikeThreshold int `koanf:"like_threshold"`

	// MinSupport is the fraction of similar users that must like a
	// candidate for it to stay in the running.
	MinSupport float64 `koanf:"min_support"`

	// MaxListLimit caps GET /books?limit.
	MaxListLimit int `koanf:"max_list_limit"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		DataDir:       "data",
		BooksFile:     "Books.csv",
		RatingsFile:   "Ratings.csv",
		UsersFile:     "Users.csv",
		StrictLoad:    false,
		LikeThreshold: 8,
		MinSupport:    0.05,
		MaxListLimit:  100,
	}
	return c
}
