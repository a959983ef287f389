package smoke

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tribe-app/matchd/internal/domain/model"
	"github.com/tribe-app/matchd/internal/seed"
	"github.com/tribe-app/matchd/pkg/logger"
)

// matchRequest is the POST /match payload.
type matchRequest struct {
	UserID          string `json:"user_id"`
	Type            string `json:"type"`
	TopK            int    `json:"top_k,omitempty"`
	UniversityAware bool   `json:"university_aware,omitempty"`
}

// Run executes the complete smoke check against a running service.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting matchd smoke check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.Requests),
		logger.Int("candidates", config.Candidates),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Hammer the three recommendation modes concurrently
	if err := runMatchRequests(ctx, client, config, stats); err != nil {
		return fmt.Errorf("match requests failed: %w", err)
	}

	// Step 3: Repeat one request per mode and compare for determinism
	if err := checkDeterminism(ctx, client, config, stats); err != nil {
		return fmt.Errorf("determinism check failed: %w", err)
	}

	// Step 4: Feed synthetic candidates through the duplicate check
	if err := runDuplicateChecks(ctx, client, config, stats); err != nil {
		return fmt.Errorf("duplicate checks failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if stats.Violations > 0 {
		return fmt.Errorf("smoke check found %d invariant violations", stats.Violations)
	}
	logger.Get().Info(ctx, "smoke check completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// smokeCall is one request the worker pool will execute.
type smokeCall func(ctx context.Context) ([]Match, error)

// buildCalls derives the request mix from the seeded catalog: every mode
// gets an even share of config.Requests across the sample users and items.
func buildCalls(client *HTTPClient, config *Config) []smokeCall {
	users := seed.Profiles()
	items := seed.Clubs()
	collections := model.Collections()

	calls := make([]smokeCall, 0, 3*config.Requests)
	for i := 0; i < config.Requests; i++ {
		user := users[i%len(users)].UserID
		item := items[i%len(items)]
		collection := collections[i%len(collections)]

		calls = append(calls,
			func(ctx context.Context) ([]Match, error) {
				return postMatch(ctx, client, config, matchRequest{
					UserID:          user,
					Type:            string(collection),
					TopK:            config.TopN,
					UniversityAware: i%2 == 0,
				})
			},
			func(ctx context.Context) ([]Match, error) {
				return getRanking(ctx, client, config.BaseURL+"/similar?"+url.Values{
					"id":    {item.ID},
					"type":  {string(item.Collection)},
					"limit": {strconv.Itoa(config.TopN)},
				}.Encode())
			},
			func(ctx context.Context) ([]Match, error) {
				return getRanking(ctx, client, config.BaseURL+"/recommendations?"+url.Values{
					"user_id": {user},
					"type":    {string(collection)},
					"limit":   {strconv.Itoa(config.TopN)},
				}.Encode())
			},
		)
	}
	return calls
}

// runMatchRequests executes the request mix with a worker pool and
// verifies every response.
func runMatchRequests(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) error {
	calls := buildCalls(client, config)
	logger.Get().Info(ctx, "sending ranked requests",
		logger.Int("total", len(calls)),
		logger.Int("workers", config.Workers))

	var (
		sent       int64
		failed     int64
		returned   int64
		violations int64
	)

	callChan := make(chan smokeCall, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for call := range callChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				results, err := call(ctx)
				atomic.AddInt64(&sent, 1)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "request failed", logger.Error(err))
					}
					continue
				}
				atomic.AddInt64(&returned, int64(len(results)))
				if err := verifyRanking(results, config.TopN); err != nil {
					atomic.AddInt64(&violations, 1)
					logger.Get().Error(ctx, "ranking invariant violated", logger.Error(err))
				}
			}
		}()
	}

	go func() {
		defer close(callChan)
		for _, call := range calls {
			select {
			case <-ctx.Done():
				return
			case callChan <- call:
			}
		}
	}()

	wg.Wait()

	stats.RequestsSent += int(atomic.LoadInt64(&sent))
	stats.RequestsFailed += int(atomic.LoadInt64(&failed))
	stats.ResultsReturned += int(atomic.LoadInt64(&returned))
	stats.Violations += int(atomic.LoadInt64(&violations))

	logger.Get().Info(ctx, "ranked requests completed",
		logger.Int("sent", int(sent)),
		logger.Int("failed", int(failed)),
		logger.Int("results", int(returned)))
	return nil
}

// checkDeterminism repeats one request per mode and requires identical
// responses.
func checkDeterminism(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) error {
	users := seed.Profiles()
	items := seed.Clubs()

	checks := []smokeCall{
		func(ctx context.Context) ([]Match, error) {
			return postMatch(ctx, client, config, matchRequest{
				UserID: users[0].UserID,
				Type:   string(model.Clubs),
				TopK:   config.TopN,
			})
		},
		func(ctx context.Context) ([]Match, error) {
			return getRanking(ctx, client, config.BaseURL+"/similar?"+url.Values{
				"id":   {items[0].ID},
				"type": {string(items[0].Collection)},
			}.Encode())
		},
		func(ctx context.Context) ([]Match, error) {
			return getRanking(ctx, client, config.BaseURL+"/recommendations?"+url.Values{
				"user_id": {users[0].UserID},
				"type":    {string(model.Events)},
			}.Encode())
		},
	}

	for _, call := range checks {
		first, err := call(ctx)
		if err != nil {
			return err
		}
		second, err := call(ctx)
		if err != nil {
			return err
		}
		stats.RequestsSent += 2
		if err := verifyDeterminism(first, second); err != nil {
			stats.Violations++
			logger.Get().Error(ctx, "determinism violated", logger.Error(err))
		}
		if config.Verbose {
			displayRanking(ctx, "determinism", first)
		}
	}

	logger.Get().Info(ctx, "determinism check completed")
	return nil
}

// runDuplicateChecks posts generated candidates to the duplicate check
// endpoint and counts how many come back flagged.
func runDuplicateChecks(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) error {
	candidates := generateCandidates(config.Candidates, time.Now())
	logger.Get().Info(ctx, "running duplicate checks", logger.Int("candidates", len(candidates)))

	for _, candidate := range candidates {
		select {
		case <-ctx.Done():
			return fmt.Errorf("cancelled during duplicate checks: %w", ctx.Err())
		default:
		}

		var report DuplicateReport
		if err := client.postJSON(ctx, config.BaseURL+"/duplicates/check", candidate, &report); err != nil {
			stats.RequestsFailed++
			if config.Verbose {
				logger.Get().Warn(ctx, "duplicate check failed", logger.Error(err))
			}
			continue
		}
		stats.DuplicatesChecked++
		if len(report.Duplicates) > 0 {
			stats.DuplicatesFlagged++
		}
	}

	logger.Get().Info(ctx, "duplicate checks completed",
		logger.Int("checked", stats.DuplicatesChecked),
		logger.Int("flagged", stats.DuplicatesFlagged))
	return nil
}

// postMatch issues a POST /match request and decodes the ranking.
func postMatch(ctx context.Context, client *HTTPClient, config *Config, req matchRequest) ([]Match, error) {
	var results []Match
	if err := client.postJSON(ctx, config.BaseURL+"/match", req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// getRanking issues a GET request and decodes the ranking.
func getRanking(ctx context.Context, client *HTTPClient, fullURL string) ([]Match, error) {
	var results []Match
	if err := client.getJSON(ctx, fullURL, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// displayFinalStats prints the final smoke statistics.
func displayFinalStats(stats *Stats) {
	var requestsPerSecond float64
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSent) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("requestsSent", stats.RequestsSent),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("resultsReturned", stats.ResultsReturned),
		logger.Int("duplicatesChecked", stats.DuplicatesChecked),
		logger.Int("duplicatesFlagged", stats.DuplicatesFlagged),
		logger.Int("violations", stats.Violations),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
