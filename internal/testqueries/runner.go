package testqueries

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shezad-m/book-recommender/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete query test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting book recommender query test",
		logger.String("baseURL", config.BaseURL),
		logger.String("dataDir", config.DataDir),
		logger.Int("isbns", config.NumISBNs),
		logger.Int("repeats", config.Repeats),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Rank the ratings table locally and pick the ISBNs to query
	plans, err := selectQueryISBNs(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("query selection failed: %w", err)
	}

	// Step 3: Submit recommendation queries concurrently
	results, err := submitQueries(ctx, config, plans, stats)
	if err != nil {
		return fmt.Errorf("query submission failed: %w", err)
	}

	// Step 4: Get the service's popular listing
	popular, err := getPopularBooks(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("popular listing retrieval failed: %w", err)
	}

	// Step 5: Verify results
	if err := verifyResults(ctx, config, plans, results, popular); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 6: Save results to file
	if err := saveResultsToFile(ctx, config, results); err != nil {
		logger.Get().Warn(ctx, "failed to save results to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveResultsToFile saves the collected query results to a JSON file.
func saveResultsToFile(ctx context.Context, config *Config, results []QueryResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "query_results_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write results to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, result := range results {
		jsonData, err := marshalJSON(result)
		if err != nil {
			return fmt.Errorf("failed to marshal result %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write result %d: %w", i, err)
		}

		// Add comma except for last result
		if i < len(results)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "results saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, queriesPerSecond float64

	if stats.QueriesSubmitted > 0 {
		successRate = float64(stats.Recommended) / float64(stats.QueriesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		queriesPerSecond = float64(stats.QueriesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("isbnsPlanned", stats.ISBNsPlanned),
		logger.Int("queriesSubmitted", stats.QueriesSubmitted),
		logger.Int("recommended", stats.Recommended),
		logger.Int("noSimilarUsers", stats.NoSimilarUsers),
		logger.Int("noCandidates", stats.NoCandidates),
		logger.Int("notFound", stats.NotFound),
		logger.Int("failed", stats.Failed),
		logger.Int("popularEntries", stats.PopularEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("queriesPerSecond", queriesPerSecond))
}
