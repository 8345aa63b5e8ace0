package drill

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/swish/pkg/logger"
)

// Run executes a complete drill: health check, baseline stats, a sequence
// of submissions, and a final verification against the reported aggregates.
// Submissions run one at a time; the entry form is shared session state on
// the server, so concurrent posts would race on it.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting drill",
		logger.String("baseURL", config.BaseURL),
		logger.Int("series", config.NumSeries),
		logger.String("interval", config.Interval.String()),
		logger.String("timeout", config.Timeout.String()))

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	before, err := fetchAggregate(ctx, client, config)
	if err != nil {
		return fmt.Errorf("baseline stats failed: %w", err)
	}

	if err := submitSeries(ctx, client, config, stats); err != nil {
		return fmt.Errorf("series submission failed: %w", err)
	}

	after, err := fetchAggregate(ctx, client, config)
	if err != nil {
		return fmt.Errorf("final stats failed: %w", err)
	}

	if err := verify(ctx, before, after, stats); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	logger.Get().Info(ctx, "drill completed",
		logger.Int("submitted", stats.Submitted),
		logger.Int("saved", stats.Saved),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()))
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *httpClient, config *Config) error {
	resp, err := client.get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// fetchAggregate retrieves the current aggregates.
func fetchAggregate(ctx context.Context, client *httpClient, config *Config) (aggregate, error) {
	var agg aggregate

	resp, err := client.get(ctx, config.BaseURL+"/stats")
	if err != nil {
		return agg, fmt.Errorf("failed to fetch stats: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return agg, fmt.Errorf("failed to read stats response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return agg, fmt.Errorf("stats request failed with status: %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &agg); err != nil {
		return agg, fmt.Errorf("failed to decode stats: %w", err)
	}
	return agg, nil
}

// submitSeries posts the configured number of random series.
func submitSeries(ctx context.Context, client *httpClient, config *Config, stats *Stats) error {
	url := config.BaseURL + "/series"

	for i := 0; i < config.NumSeries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		req := randomSeries()
		resp, err := client.post(ctx, url, req)
		if err != nil {
			return fmt.Errorf("submission %d failed: %w", i+1, err)
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return fmt.Errorf("submission %d read failed: %w", i+1, err)
		}

		stats.Submitted++
		var ack submitAck
		if resp.StatusCode == http.StatusOK && json.Unmarshal(body, &ack) == nil && ack.Status == "saved" {
			stats.Saved++
			stats.MadeShotsSent += req.MadeShots
			if config.Verbose {
				logger.Get().Info(ctx, "series saved",
					logger.Int("madeShots", req.MadeShots),
					logger.String("message", ack.Message))
			}
		} else {
			stats.Failed++
			logger.Get().Warn(ctx, "series rejected",
				logger.Int("madeShots", req.MadeShots),
				logger.Int("status", resp.StatusCode))
		}

		if config.Interval > 0 && i < config.NumSeries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(config.Interval):
			}
		}
	}
	return nil
}

// verify checks that the aggregates moved by exactly what was saved.
func verify(ctx context.Context, before, after aggregate, stats *Stats) error {
	gotSeries := after.SeriesCount - before.SeriesCount
	if gotSeries != stats.Saved {
		return fmt.Errorf("series count moved by %d, expected %d", gotSeries, stats.Saved)
	}

	gotMade := after.TotalMadeShots - before.TotalMadeShots
	if gotMade != stats.MadeShotsSent {
		return fmt.Errorf("total made shots moved by %d, expected %d", gotMade, stats.MadeShotsSent)
	}

	logger.Get().Info(ctx, "aggregates verified",
		logger.Int("seriesCount", after.SeriesCount),
		logger.Int("totalMadeShots", after.TotalMadeShots),
		logger.Int("totalShots", after.TotalShots),
		logger.String("percentage", after.Percentage))
	return nil
}
