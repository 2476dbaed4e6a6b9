// Package catalog holds the fixed tables the assistant works from: keyword lists,
// the tag catalog with its trigger rules, score constants and message templates.
//
// Slices are exposed through accessor functions that return copies, so callers can
// never mutate the shared tables.
package catalog

import (
	"slices"

	"github.com/okian/outreach/internal/domain/model"
)

// Score constants.
const (
	// RecommendThreshold is the minimum match score that produces a draft.
	RecommendThreshold = 75.0
	// UrgentThreshold is the score above which drafts switch to the urgent tone.
	UrgentThreshold = 85.0

	BaseScore         = 60
	KeywordWeight     = 15
	BaseScoreCap      = 90
	RandomSpread      = 10
	MinScore          = 0
	MaxScore          = 100
	MaxReasonKeywords = 3
)

// Localized markers.
const (
	// CompanyKeyword names the company tracked by the COMPANY tag.
	CompanyKeyword = "Toyota"
	// SystemWord is the localized word for "system"; it also triggers the IT tag.
	SystemWord = "system"
	// NewspaperMarker in a recipient's company selects the press wording and honorific.
	NewspaperMarker = "Newspaper"
)

// Reason phrases.
const (
	ReasonExpertise        = "recipient expertise"
	ReasonRelevance        = "high relevance"
	ReasonCalculationError = "calculation error"
)

// Tag is one entry of the tag catalog. Confidence is fixed, never computed.
type Tag struct {
	Name       string
	Category   model.Category
	Confidence float64
}

// TagRule fires for a tag whose name contains NameMarker when the normalized
// content text contains any of Triggers.
type TagRule struct {
	NameMarker string
	Triggers   []string
}

var keywords = []string{ //nolint:gochecknoglobals // static table
	"AI", "DX", "IT", "Tech", "Startup",
	"Business", "Economy", "Finance", "Marketing", "Healthcare",
	"Education", "Environment", "Manufacturing", "Sports", "Entertainment",
}

var tags = []Tag{ //nolint:gochecknoglobals // static table
	{Name: "AI/ML", Category: model.CategoryTechnology, Confidence: 0.95},
	{Name: "DX (Digital Transformation)", Category: model.CategoryTopic, Confidence: 0.88},
	{Name: CompanyKeyword, Category: model.CategoryCompany, Confidence: 0.75},
	{Name: "IT Industry", Category: model.CategoryIndustry, Confidence: 0.82},
}

var tagRules = []TagRule{ //nolint:gochecknoglobals // static table
	{NameMarker: "AI", Triggers: []string{"ai"}},
	{NameMarker: "DX", Triggers: []string{"dx"}},
	{NameMarker: CompanyKeyword, Triggers: []string{"toyota"}},
	{NameMarker: "IT", Triggers: []string{"it", SystemWord}},
}

// Keywords returns the keyword catalog used for match scoring, in catalog order.
func Keywords() []string { return slices.Clone(keywords) }

// Tags returns the tag catalog in output order.
func Tags() []Tag { return slices.Clone(tags) }

// TagRules returns the trigger rules of the tag catalog.
func TagRules() []TagRule {
	out := make([]TagRule, len(tagRules))
	for i, r := range tagRules {
		out[i] = TagRule{NameMarker: r.NameMarker, Triggers: slices.Clone(r.Triggers)}
	}
	return out
}

// FixedReasons are appended to every successful match result.
func FixedReasons() []string { return []string{ReasonExpertise, ReasonRelevance} }
