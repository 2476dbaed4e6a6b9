// Package scoring computes the affinity between a recipient and a content item.
//
// The score is a mock: shared catalog keywords raise a base value and a random
// term adds variability. The random term is deliberate, so tests that need exact
// values inject a fixed RandomSource.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/outreach/internal/domain/catalog"
	"github.com/okian/outreach/internal/domain/keyword"
	"github.com/okian/outreach/internal/domain/model"
	"github.com/okian/outreach/pkg/logger"
)

// ErrRandomOutOfRange is reported when a RandomSource leaves [0,1).
var ErrRandomOutOfRange = errors.New("random value out of range")

// RandomSource yields values in [0,1). Implementations must be safe for concurrent use.
type RandomSource interface {
	Float64() float64
}

// FixedSource always returns the same value. Useful for deterministic tests.
type FixedSource float64

// Float64 returns the fixed value.
func (f FixedSource) Float64() float64 { return float64(f) }

// lockedSource serializes access to a *rand.Rand, which is not goroutine-safe.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a concurrency-safe source seeded with seed.
func NewSeededSource(seed int64) RandomSource {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // mock variability, not security
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Option applies a configuration option to the KeywordScorer.
type Option func(*KeywordScorer)

// WithRandomSource sets the source of the random term.
func WithRandomSource(src RandomSource) Option {
	return func(s *KeywordScorer) {
		if src != nil {
			s.rng = src
		}
	}
}

// WithSeed makes the random term reproducible. Zero keeps the time-seeded default.
func WithSeed(seed int64) Option {
	return func(s *KeywordScorer) {
		if seed != 0 {
			s.rng = NewSeededSource(seed)
		}
	}
}

// WithKeywords replaces the keyword catalog.
func WithKeywords(words []string) Option {
	return func(s *KeywordScorer) {
		s.keywords = append([]string(nil), words...)
	}
}

// WithLogger sets the logger used to report absorbed failures.
func WithLogger(l logger.Logger) Option {
	return func(s *KeywordScorer) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scorer computes a match result. It never fails: errors degrade the result.
type Scorer interface {
	Score(ctx context.Context, recipient model.RecipientProfile, content model.ContentItem) model.MatchResult
}

// KeywordScorer implements Scorer by counting catalog keywords shared between
// the recipient's company and the content's title and summary.
type KeywordScorer struct {
	keywords []string
	matcher  *keyword.Matcher
	rng      RandomSource
	logger   logger.Logger
}

// NewKeywordScorer creates a scorer over the default keyword catalog.
func NewKeywordScorer(opts ...Option) *KeywordScorer {
	s := &KeywordScorer{
		keywords: catalog.Keywords(),
		rng:      NewSeededSource(time.Now().UnixNano()),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.matcher = keyword.NewMatcher(s.keywords)
	return s
}

// Score computes the match result for one recipient.
func (s *KeywordScorer) Score(ctx context.Context, recipient model.RecipientProfile, content model.ContentItem) (res model.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			res = s.fallback(ctx, recipient, content, fmt.Errorf("panic: %v", r))
		}
	}()

	shared := SharedKeywords(s.matcher, recipient, content)
	score, err := FinalScore(len(shared), s.rng.Float64())
	if err != nil {
		return s.fallback(ctx, recipient, content, err)
	}

	return model.MatchResult{
		RecipientID: recipient.ID,
		ContentID:   content.ID,
		Score:       score,
		Reasons:     Reasons(shared),
	}
}

func (s *KeywordScorer) fallback(ctx context.Context, recipient model.RecipientProfile, content model.ContentItem, err error) model.MatchResult {
	s.logger.Error(ctx, "match scoring failed",
		logger.String("recipient_id", recipient.ID),
		logger.String("content_id", content.ID),
		logger.Error(err),
	)
	return Fallback(recipient, content)
}

// Fallback is the degraded result returned when scoring fails.
func Fallback(recipient model.RecipientProfile, content model.ContentItem) model.MatchResult {
	return model.MatchResult{
		RecipientID: recipient.ID,
		ContentID:   content.ID,
		Score:       0,
		Reasons:     []string{catalog.ReasonCalculationError},
	}
}

// SharedKeywords returns the recipient keywords (from the company) that are contained
// in at least one content keyword (from title and summary), in catalog order.
func SharedKeywords(m *keyword.Matcher, recipient model.RecipientProfile, content model.ContentItem) []string {
	recipientKeywords := m.Find(recipient.Company)
	contentKeywords := m.Find(content.Title + " " + content.Summary)
	return keyword.Intersect(recipientKeywords, contentKeywords)
}

// BaseScore is the deterministic part of the score for shared keyword count n.
func BaseScore(n int) float64 {
	return math.Min(catalog.BaseScoreCap, float64(n)*catalog.KeywordWeight+catalog.BaseScore)
}

// FinalScore adds the random term r in [0,1), scaled to the random spread, to the
// base score, clamps to [0,100] and rounds to one decimal.
func FinalScore(n int, r float64) (float64, error) {
	if math.IsNaN(r) || r < 0 || r >= 1 {
		return 0, fmt.Errorf("%w: %v", ErrRandomOutOfRange, r)
	}
	score := BaseScore(n) + r*catalog.RandomSpread
	return Round1(Clamp(score)), nil
}

// Clamp bounds v to [0,100].
func Clamp(v float64) float64 {
	return math.Max(catalog.MinScore, math.Min(catalog.MaxScore, v))
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Reasons lists up to three shared keywords followed by the fixed phrases.
func Reasons(shared []string) []string {
	n := min(len(shared), catalog.MaxReasonKeywords)
	fixed := catalog.FixedReasons()
	out := make([]string, 0, n+len(fixed))
	out = append(out, shared[:n]...)
	return append(out, fixed...)
}
