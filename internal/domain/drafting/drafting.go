// Package drafting renders outreach emails for recipients that cleared the match threshold.
package drafting

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/okian/outreach/internal/domain/catalog"
	"github.com/okian/outreach/internal/domain/model"
	"github.com/okian/outreach/pkg/logger"
)

var defaultBody = template.Must(template.New("body").Parse(catalog.BodyTemplate)) //nolint:gochecknoglobals // parsed once

// Drafter produces a draft for one recipient. It never fails: errors degrade the draft.
type Drafter interface {
	Draft(ctx context.Context, recipient model.RecipientProfile, content model.ContentItem, score float64) model.DraftMessage
}

// Option applies a configuration option to the TemplateDrafter.
type Option func(*TemplateDrafter)

// WithLogger sets the logger used to report absorbed failures.
func WithLogger(l logger.Logger) Option {
	return func(d *TemplateDrafter) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithTemplate replaces the body template. It is executed with bodyData.
func WithTemplate(t *template.Template) Option {
	return func(d *TemplateDrafter) {
		if t != nil {
			d.body = t
		}
	}
}

// TemplateDrafter implements Drafter with a text/template body.
type TemplateDrafter struct {
	body   *template.Template
	logger logger.Logger
}

// NewTemplateDrafter creates a drafter with the default wording.
func NewTemplateDrafter(opts ...Option) *TemplateDrafter {
	d := &TemplateDrafter{
		body:   defaultBody,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// bodyData holds the values substituted into the body template.
type bodyData struct {
	Honorific   string
	Name        string
	Company     string
	Summary     string
	UrgencyNote string
	Score       string
}

// Draft renders the subject and body. Text fields are substituted verbatim.
func (d *TemplateDrafter) Draft(ctx context.Context, recipient model.RecipientProfile, content model.ContentItem, score float64) (msg model.DraftMessage) {
	defer func() {
		if r := recover(); r != nil {
			msg = d.fallback(ctx, recipient, content, fmt.Errorf("panic: %v", r))
		}
	}()

	tone := ToneForScore(score)
	newspaper := IsNewspaper(recipient)

	data := bodyData{
		Honorific: catalog.HonorificDefault,
		Name:      recipient.Name,
		Company:   recipient.Company,
		Summary:   content.Summary,
		Score:     FormatScore(score),
	}
	if newspaper {
		data.Honorific = catalog.HonorificNewspaper
	}
	if tone == model.ToneUrgent {
		data.UrgencyNote = catalog.UrgencyNote
	}

	var b strings.Builder
	if err := d.body.Execute(&b, data); err != nil {
		return d.fallback(ctx, recipient, content, err)
	}

	return model.DraftMessage{
		Subject: Subject(tone, newspaper, content.Title),
		Body:    b.String(),
		Tone:    tone,
	}
}

func (d *TemplateDrafter) fallback(ctx context.Context, recipient model.RecipientProfile, content model.ContentItem, err error) model.DraftMessage {
	d.logger.Error(ctx, "draft generation failed",
		logger.String("recipient_id", recipient.ID),
		logger.String("content_id", content.ID),
		logger.Error(err),
	)
	return Fallback(content)
}

// Fallback is the generic draft returned when rendering fails.
func Fallback(content model.ContentItem) model.DraftMessage {
	return model.DraftMessage{
		Subject: catalog.FallbackSubjectPrefix + content.Title,
		Body:    catalog.FallbackBody,
		Tone:    model.ToneFormal,
	}
}

// ToneForScore is URGENT strictly above the urgency threshold, FORMAL otherwise.
func ToneForScore(score float64) model.Tone {
	if score > catalog.UrgentThreshold {
		return model.ToneUrgent
	}
	return model.ToneFormal
}

// IsNewspaper reports whether the recipient's company carries the newspaper marker.
// The check is case-sensitive.
func IsNewspaper(recipient model.RecipientProfile) bool {
	return strings.Contains(recipient.Company, catalog.NewspaperMarker)
}

// Subject builds the subject line for tone, recipient kind and content title.
func Subject(tone model.Tone, newspaper bool, title string) string {
	var b strings.Builder
	if tone == model.ToneUrgent {
		b.WriteString(catalog.SubjectUrgentPrefix)
	}
	if newspaper {
		b.WriteString(catalog.SubjectPressKind)
	} else {
		b.WriteString(catalog.SubjectFeatureKind)
	}
	b.WriteString(title)
	return b.String()
}

// FormatScore renders a score with the shortest exact decimal form, e.g. 75 or 87.3.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
