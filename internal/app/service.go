// Package service wires the tagging, scoring and drafting components into the
// outreach pipeline and implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/outreach/internal/domain/catalog"
	"github.com/okian/outreach/internal/domain/drafting"
	"github.com/okian/outreach/internal/domain/model"
	"github.com/okian/outreach/internal/domain/scoring"
	"github.com/okian/outreach/internal/domain/tagging"
	"github.com/okian/outreach/pkg/logger"
	"github.com/okian/outreach/pkg/metrics"
)

// ErrRecipientNotFound is returned when a match result names a recipient that is
// not part of the batch.
var ErrRecipientNotFound = errors.New("recipient not found")

// Service implements the outreach assistant. It keeps no per-request state, so a
// single instance serves concurrent callers.
type Service struct {
	mu sync.RWMutex

	// Core components
	tagger  tagging.Suggester
	scorer  scoring.Scorer
	drafter drafting.Drafter

	// Configuration
	modelPath        string
	batchConcurrency int
	randomSeed       int64
	randomSource     scoring.RandomSource

	// State
	started bool

	// Counters
	processed       atomic.Int64
	failed          atomic.Int64
	matchesScored   atomic.Int64
	draftsGenerated atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service and its components.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithModelPath records the model location. The mock logic never reads it.
func WithModelPath(path string) Option {
	return func(s *Service) {
		s.modelPath = path
	}
}

// WithBatchConcurrency caps the goroutines used per batch. Zero means unlimited.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.batchConcurrency = n
		}
	}
}

// WithRandomSeed makes the scoring random term reproducible. Zero keeps it time-seeded.
func WithRandomSeed(seed int64) Option {
	return func(s *Service) {
		s.randomSeed = seed
	}
}

// WithRandomSource injects the scoring random term. It takes precedence over WithRandomSeed.
func WithRandomSource(src scoring.RandomSource) Option {
	return func(s *Service) {
		s.randomSource = src
	}
}

// WithTagger replaces the tag suggester.
func WithTagger(t tagging.Suggester) Option {
	return func(s *Service) {
		if t != nil {
			s.tagger = t
		}
	}
}

// WithScorer replaces the match scorer.
func WithScorer(sc scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithDrafter replaces the draft generator.
func WithDrafter(d drafting.Drafter) Option {
	return func(s *Service) {
		if d != nil {
			s.drafter = d
		}
	}
}

// New constructs a Service. Components not injected by options are built from
// the default catalog.
func New(opts ...Option) *Service {
	s := &Service{
		logger: logger.Nop(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.tagger == nil {
		s.tagger = tagging.NewCatalogSuggester(tagging.WithLogger(s.logger.Named("tagging")))
	}
	if s.scorer == nil {
		s.scorer = scoring.NewKeywordScorer(
			scoring.WithSeed(s.randomSeed),
			scoring.WithRandomSource(s.randomSource),
			scoring.WithLogger(s.logger.Named("scoring")),
		)
	}
	if s.drafter == nil {
		s.drafter = drafting.NewTemplateDrafter(drafting.WithLogger(s.logger.Named("drafting")))
	}

	return s
}

// Start marks the service as running. The assistant has no background work.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.started = true
	s.logger.Info(ctx, "outreach assistant started",
		logger.Bool("modelPathConfigured", s.modelPath != ""),
		logger.Int("batchConcurrency", s.batchConcurrency),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "outreach assistant stopped")
}

// SuggestTags returns the catalog tags that fire for content.
func (s *Service) SuggestTags(ctx context.Context, content model.ContentItem) []model.TagSuggestion {
	tags := s.tagger.Suggest(ctx, content)
	for _, t := range tags {
		metrics.RecordTag(string(t.Category))
	}
	return tags
}

// ScoreMatch computes the affinity between recipient and content.
func (s *Service) ScoreMatch(ctx context.Context, recipient model.RecipientProfile, content model.ContentItem) model.MatchResult {
	res := s.scorer.Score(ctx, recipient, content)
	s.matchesScored.Add(1)
	metrics.RecordMatch(res.Score)
	if isScoringFallback(res) {
		metrics.RecordFallback("scoring")
	}
	return res
}

// DraftMessage renders the outreach email for recipient at score.
func (s *Service) DraftMessage(ctx context.Context, recipient model.RecipientProfile, content model.ContentItem, score float64) model.DraftMessage {
	msg := s.drafter.Draft(ctx, recipient, content, score)
	s.draftsGenerated.Add(1)
	metrics.RecordDraft(string(msg.Tone))
	if msg.Body == catalog.FallbackBody {
		metrics.RecordFallback("drafting")
	}
	return msg
}

// ProcessContent runs the whole pipeline: tags, a score per recipient and a draft
// for every recipient at or above the recommendation threshold. Match results keep
// the order of recipients. Every unit of a batch settles before an error is returned.
func (s *Service) ProcessContent(ctx context.Context, content model.ContentItem, recipients []model.RecipientProfile) (model.ProcessResult, error) {
	start := time.Now()
	metrics.AddInflight(1)
	defer metrics.AddInflight(-1)

	res, err := s.process(ctx, content, recipients)

	latencyMs := float64(time.Since(start).Microseconds()) / 1000
	metrics.ObserveProcess(len(recipients), latencyMs, err)
	if err != nil {
		s.failed.Add(1)
		s.logger.Error(ctx, "content processing failed",
			logger.String("content_id", content.ID),
			logger.Int("recipients", len(recipients)),
			logger.Error(err),
		)
		return model.ProcessResult{}, err
	}

	s.processed.Add(1)
	s.logger.Debug(ctx, "content processed",
		logger.String("run_id", res.RunID),
		logger.String("content_id", content.ID),
		logger.Int("tags", len(res.Tags)),
		logger.Int("recipients", len(recipients)),
		logger.Int("recommendations", len(res.Recommendations)),
		logger.Float64("latency_ms", latencyMs),
	)
	return res, nil
}

func (s *Service) process(ctx context.Context, content model.ContentItem, recipients []model.RecipientProfile) (model.ProcessResult, error) {
	tags := s.SuggestTags(ctx, content)

	matches := make([]model.MatchResult, len(recipients))
	g := s.newGroup()
	for i, r := range recipients {
		i, r := i, r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			matches[i] = s.ScoreMatch(ctx, r, content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.ProcessResult{}, fmt.Errorf("score recipients: %w", err)
	}

	byID := make(map[string]model.RecipientProfile, len(recipients))
	for _, r := range recipients {
		if _, ok := byID[r.ID]; !ok {
			byID[r.ID] = r
		}
	}

	var selected []model.MatchResult
	for _, m := range matches {
		if m.Score >= catalog.RecommendThreshold {
			selected = append(selected, m)
		}
	}

	recs := make([]model.Recommendation, len(selected))
	g = s.newGroup()
	for i, m := range selected {
		i, m := i, m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, ok := byID[m.RecipientID]
			if !ok {
				return fmt.Errorf("%w: %s", ErrRecipientNotFound, m.RecipientID)
			}
			recs[i] = model.Recommendation{
				RecipientID: m.RecipientID,
				Score:       m.Score,
				Draft:       s.DraftMessage(ctx, r, content, m.Score),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.ProcessResult{}, fmt.Errorf("draft recommendations: %w", err)
	}

	for range recs {
		metrics.RecordRecommendation()
	}

	return model.ProcessResult{
		RunID:           uuid.NewString(),
		Tags:            tags,
		MatchResults:    matches,
		Recommendations: recs,
	}, nil
}

func (s *Service) newGroup() *errgroup.Group {
	g := &errgroup.Group{}
	if s.batchConcurrency > 0 {
		g.SetLimit(s.batchConcurrency)
	}
	return g
}

func isScoringFallback(res model.MatchResult) bool {
	return res.Score == 0 && len(res.Reasons) == 1 && res.Reasons[0] == catalog.ReasonCalculationError
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":             s.started,
		"modelPathConfigured": s.modelPath != "",
		"batchConcurrency":    s.batchConcurrency,
		"contentProcessed":    s.processed.Load(),
		"processFailures":     s.failed.Load(),
		"matchesScored":       s.matchesScored.Load(),
		"draftsGenerated":     s.draftsGenerated.Load(),
	}
}
