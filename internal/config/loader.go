package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if BOOKREC_CONFIG is set
//  3. env (prefix BOOKREC_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("BOOKREC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: BOOKREC_ADDR, BOOKREC_DATA_DIR, ...
	// Map env keys like BOOKREC_DATA_DIR -> data_dir (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("BOOKREC_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "bookrec_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot start with.
func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	if cfg.BooksFile == "" || cfg.RatingsFile == "" || cfg.UsersFile == "" {
		return fmt.Errorf("%w: source file names must not be empty", ErrInvalidConfig)
	}
	if cfg.LikeThreshold < 0 || cfg.LikeThreshold > 10 {
		return fmt.Errorf("%w: like_threshold %d outside 0..10", ErrInvalidConfig, cfg.LikeThreshold)
	}
	if cfg.MinSupport <= 0 || cfg.MinSupport >= 1 {
		return fmt.Errorf("%w: min_support %v outside (0, 1)", ErrInvalidConfig, cfg.MinSupport)
	}
	if cfg.MaxListLimit < 1 {
		return fmt.Errorf("%w: max_list_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
