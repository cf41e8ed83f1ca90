package testqueries

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// submitQueries runs every planned query Repeats times using a bounded
// worker pool and collects per-attempt results.
func submitQueries(ctx context.Context, config *Config, plans []QueryPlan, stats *Stats) ([]QueryResult, error) {
	total := len(plans) * config.Repeats
	log.Printf("📤 Submitting %d queries (%d ISBNs x %d repeats) with %d workers...",
		total, len(plans), config.Repeats, config.Workers)

	client := newHTTPClient(config.Timeout)

	// Results are indexed by job number, so workers never contend.
	results := make([]QueryResult, total)
	var (
		submitted      int64
		recommended    int64
		noSimilarUsers int64
		noCandidates   int64
		notFound       int64
		failed         int64
	)

	// Progress reporting
	var lastReport atomic.Int64
	reportInterval := 1 * time.Second

	// Create worker pool
	jobChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
					plan := plans[j/config.Repeats]
					attempt := j % config.Repeats
					result := submitSingleQuery(ctx, client, config.BaseURL, plan, attempt)
					results[j] = result

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch result.Outcome {
					case "recommended":
						atomic.AddInt64(&recommended, 1)
					case "no_similar_users":
						atomic.AddInt64(&noSimilarUsers, 1)
					case "no_candidates":
						atomic.AddInt64(&noCandidates, 1)
					case "not_found":
						atomic.AddInt64(&notFound, 1)
					default:
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting
					now := time.Now().UnixNano()
					if last := lastReport.Load(); now-last >= int64(reportInterval) && lastReport.CompareAndSwap(last, now) {
						done := atomic.LoadInt64(&submitted)
						rec := atomic.LoadInt64(&recommended)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (recommended: %d, failed: %d)",
								done, total, rec, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (recommended: %d, failed: %d)",
								done, total, rec, fail)
						}
					}
				}
			}
		}()
	}

	// Send job indices to workers
	go func() {
		defer close(jobChan)
		for j := 0; j < total; j++ {
			select {
			case <-ctx.Done():
				return
			case jobChan <- j:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.QueriesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.Recommended = int(atomic.LoadInt64(&recommended))
	stats.NoSimilarUsers = int(atomic.LoadInt64(&noSimilarUsers))
	stats.NoCandidates = int(atomic.LoadInt64(&noCandidates))
	stats.NotFound = int(atomic.LoadInt64(&notFound))
	stats.Failed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Query submission completed:
   Recommended: %d
   No similar users: %d
   No candidates: %d
   Not found: %d
   Failed: %d
`, stats.Recommended, stats.NoSimilarUsers, stats.NoCandidates, stats.NotFound, stats.Failed)

	return results, nil
}

// submitSingleQuery submits one query and classifies the answer.
func submitSingleQuery(ctx context.Context, client *HTTPClient, baseURL string, plan QueryPlan, attempt int) QueryResult {
	result := QueryResult{
		QueryID: plan.QueryID,
		ISBN:    plan.ISBN,
		Attempt: attempt,
		Outcome: "failed",
	}

	start := time.Now()
	url := fmt.Sprintf("%s/recommendations/%s", baseURL, plan.ISBN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return result
	}
	body, err := readResponseBody(resp)
	result.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		return result
	}

	switch resp.StatusCode {
	case StatusOK:
		var rec RecommendationResponse
		if err := unmarshalJSON(body, &rec); err != nil {
			return result
		}
		result.Outcome = "recommended"
		result.QueryTitle = rec.Query.Title
		result.RecommendedISBN = rec.Recommendation.ISBN
		result.RecommendedTitle = rec.Recommendation.Title
	case StatusNotFound:
		var apiErr ErrorResponse
		if err := unmarshalJSON(body, &apiErr); err != nil {
			return result
		}
		switch apiErr.Code {
		case "not_found", "no_similar_users", "no_candidates":
			result.Outcome = apiErr.Code
		}
	}

	return result
}

// getPopularBooks retrieves the top N popular listing.
func getPopularBooks(ctx context.Context, config *Config, stats *Stats) ([]PopularBook, error) {
	log.Printf("🥇 Getting top %d popular books...", config.TopN)

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/books?limit=%d", config.BaseURL, config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != StatusOK {
		body, _ := readResponseBody(resp)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var popular []PopularBook
	if err := unmarshalJSON(body, &popular); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.PopularEntries = len(popular)
	log.Printf("✅ Retrieved %d popular books", len(popular))

	return popular, nil
}
