package model

// Category classifies a suggested tag.
type Category string

// Tag categories.
const (
	CategoryIndustry   Category = "INDUSTRY"
	CategoryTopic      Category = "TOPIC"
	CategoryCompany    Category = "COMPANY"
	CategoryTechnology Category = "TECHNOLOGY"
	CategoryEvent      Category = "EVENT"
)

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryIndustry, CategoryTopic, CategoryCompany, CategoryTechnology, CategoryEvent:
		return true
	}
	return false
}

// Tone is the register of a drafted message.
type Tone string

// Draft tones. ToneCasual is declared but no current rule selects it.
const (
	ToneFormal Tone = "FORMAL"
	ToneCasual Tone = "CASUAL"
	ToneUrgent Tone = "URGENT"
)

// Valid reports whether t is one of the declared tones.
func (t Tone) Valid() bool {
	switch t {
	case ToneFormal, ToneCasual, ToneUrgent:
		return true
	}
	return false
}

// TagSuggestion is one catalog tag whose rule fired for a content item.
type TagSuggestion struct {
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}

// MatchResult is the affinity between one recipient and one content item.
type MatchResult struct {
	RecipientID string  `json:"recipient_id"`
	ContentID   string  `json:"content_id"`
	Score       float64 `json:"score"` // always within [0,100]
	// Reasons holds at most three matched keywords followed by two fixed phrases.
	Reasons []string `json:"reasons"`
}

// DraftMessage is a generated outreach email.
type DraftMessage struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Tone    Tone   `json:"tone"`
}

// Recommendation pairs a recipient that cleared the outreach threshold with its draft.
type Recommendation struct {
	RecipientID string       `json:"recipient_id"`
	Score       float64      `json:"score"`
	Draft       DraftMessage `json:"draft"`
}

// ProcessResult is the outcome of running the whole pipeline for one content item.
type ProcessResult struct {
	RunID           string           `json:"run_id"`
	Tags            []TagSuggestion  `json:"tags"`
	MatchResults    []MatchResult    `json:"match_results"`
	Recommendations []Recommendation `json:"recommendations"`
}
