// Package tagging suggests topical tags for a content item from a fixed catalog.
package tagging

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/outreach/internal/domain/catalog"
	"github.com/okian/outreach/internal/domain/keyword"
	"github.com/okian/outreach/internal/domain/model"
	"github.com/okian/outreach/pkg/logger"
)

// Suggester returns the catalog tags whose trigger rules fire for a content item.
type Suggester interface {
	Suggest(ctx context.Context, content model.ContentItem) []model.TagSuggestion
}

// Option applies a configuration option to the CatalogSuggester.
type Option func(*CatalogSuggester)

// WithLogger sets the logger used to report absorbed failures.
func WithLogger(l logger.Logger) Option {
	return func(s *CatalogSuggester) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog replaces the tag catalog and its rules.
func WithCatalog(tags []catalog.Tag, rules []catalog.TagRule) Option {
	return func(s *CatalogSuggester) {
		s.tags = append([]catalog.Tag(nil), tags...)
		s.rules = append([]catalog.TagRule(nil), rules...)
	}
}

// WithNormalizer replaces the text normalization applied before matching.
func WithNormalizer(fn func(string) string) Option {
	return func(s *CatalogSuggester) {
		if fn != nil {
			s.normalize = fn
		}
	}
}

// CatalogSuggester implements Suggester with substring rules over a static catalog.
type CatalogSuggester struct {
	tags      []catalog.Tag
	rules     []catalog.TagRule
	matcher   *keyword.Matcher
	normalize func(string) string
	logger    logger.Logger
}

// NewCatalogSuggester creates a suggester over the default catalog.
func NewCatalogSuggester(opts ...Option) *CatalogSuggester {
	s := &CatalogSuggester{
		tags:      catalog.Tags(),
		rules:     catalog.TagRules(),
		normalize: keyword.Normalize,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var triggers []string
	for _, r := range s.rules {
		triggers = append(triggers, r.Triggers...)
	}
	s.matcher = keyword.NewMatcher(triggers)
	return s
}

// Suggest returns matching tags in catalog order. It never fails: an internal
// failure is logged and yields an empty result.
func (s *CatalogSuggester) Suggest(ctx context.Context, content model.ContentItem) (out []model.TagSuggestion) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, "tag suggestion failed",
				logger.String("content_id", content.ID),
				logger.Error(fmt.Errorf("panic: %v", r)),
			)
			out = []model.TagSuggestion{}
		}
	}()

	text := s.normalize(content.Title + content.Summary + content.Body)
	hits := make(map[string]bool)
	for _, w := range s.matcher.FindNormalized(text) {
		hits[w] = true
	}

	out = make([]model.TagSuggestion, 0, len(s.tags))
	for _, tag := range s.tags {
		if s.fires(tag, hits) {
			out = append(out, model.TagSuggestion{
				Name:       tag.Name,
				Category:   tag.Category,
				Confidence: tag.Confidence,
			})
		}
	}
	return out
}

// fires reports whether any rule applies to tag and has a trigger in hits.
func (s *CatalogSuggester) fires(tag catalog.Tag, hits map[string]bool) bool {
	for _, rule := range s.rules {
		if !strings.Contains(tag.Name, rule.NameMarker) {
			continue
		}
		for _, trigger := range rule.Triggers {
			if hits[trigger] {
				return true
			}
		}
	}
	return false
}
