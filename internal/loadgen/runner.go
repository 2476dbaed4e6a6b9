package loadgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/outreach/internal/domain/model"
	"github.com/okian/outreach/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	reportPermission    = 0o600
)

// ErrRunFailed is returned when any request failed or any check did not hold.
var ErrRunFailed = errors.New("load run failed")

type counters struct {
	sent, ok, failed, checks, matches, recs, urgent atomic.Int64
}

// Run executes the complete load run and returns its statistics.
func Run(ctx context.Context, cfg *Config, l logger.Logger) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	l.Info(ctx, "starting outreach load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("recipients", cfg.Recipients),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	client := NewHTTPClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate requests
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	requests := NewGenerator(seed).Requests(cfg.Requests, cfg.Recipients)
	stats.RequestsGenerated = len(requests)
	l.Info(ctx, "generated requests", logger.Int("count", len(requests)), logger.Any("seed", seed))

	// Step 3: Submit requests concurrently and verify each response
	var c counters
	g := &errgroup.Group{}
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for _, req := range requests {
		req := req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.sent.Add(1)
			res, err := client.Process(ctx, req)
			if err != nil {
				c.failed.Add(1)
				l.Warn(ctx, "request failed", logger.String("content_id", req.Content.ID), logger.Error(err))
				return nil
			}
			c.ok.Add(1)
			record(&c, res)
			if err := Verify(req, res); err != nil {
				c.checks.Add(1)
				if cfg.Verbose {
					l.Warn(ctx, "response check failed", logger.String("run_id", res.RunID), logger.Error(err))
				}
			}
			return nil
		})
	}
	waitErr := g.Wait()

	// Final statistics
	stats.RequestsSent = c.sent.Load()
	stats.RequestsOK = c.ok.Load()
	stats.RequestsFailed = c.failed.Load()
	stats.CheckFailures = c.checks.Load()
	stats.Matches = c.matches.Load()
	stats.Recommendations = c.recs.Load()
	stats.UrgentDrafts = c.urgent.Load()
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, l, stats)

	// Step 4: Save report
	if cfg.OutputFile != "" {
		if err := saveReport(cfg.OutputFile, stats); err != nil {
			l.Warn(ctx, "failed to save report", logger.Error(err))
		} else {
			l.Info(ctx, "report saved", logger.String("file", cfg.OutputFile))
		}
	}

	if waitErr != nil {
		return stats, fmt.Errorf("submission interrupted: %w", waitErr)
	}
	if stats.RequestsFailed > 0 || stats.CheckFailures > 0 {
		return stats, fmt.Errorf("%w: %d failed requests, %d failed checks", ErrRunFailed, stats.RequestsFailed, stats.CheckFailures)
	}
	return stats, nil
}

func record(c *counters, res model.ProcessResult) {
	c.matches.Add(int64(len(res.MatchResults)))
	c.recs.Add(int64(len(res.Recommendations)))
	for _, r := range res.Recommendations {
		if r.Draft.Tone == model.ToneUrgent {
			c.urgent.Add(1)
		}
	}
}

// saveReport writes stats as indented JSON.
func saveReport(filename string, stats *Stats) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), reportPermission); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, l logger.Logger, stats *Stats) {
	var requestsPerSecond float64
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSent) / stats.Duration.Seconds()
	}

	l.Info(ctx, "final statistics",
		logger.Int("requestsGenerated", stats.RequestsGenerated),
		logger.Any("requestsSent", stats.RequestsSent),
		logger.Any("requestsOK", stats.RequestsOK),
		logger.Any("requestsFailed", stats.RequestsFailed),
		logger.Any("checkFailures", stats.CheckFailures),
		logger.Any("matches", stats.Matches),
		logger.Any("recommendations", stats.Recommendations),
		logger.Any("urgentDrafts", stats.UrgentDrafts),
		logger.Duration("duration", stats.Duration),
		logger.Float64("requestsPerSecond", requestsPerSecond),
	)
}
