package loadgen

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/outreach/internal/domain/catalog"
	"github.com/okian/outreach/internal/domain/model"
)

// ErrCheckFailed marks a response that breaks a pipeline rule.
var ErrCheckFailed = errors.New("response check failed")

const maxReasons = catalog.MaxReasonKeywords + 2

// Verify checks res against the rules the pipeline guarantees for req. It
// returns every violation joined, each wrapping ErrCheckFailed.
func Verify(req ProcessRequest, res model.ProcessResult) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrCheckFailed, fmt.Sprintf(format, args...)))
	}

	if _, err := uuid.Parse(res.RunID); err != nil {
		fail("run_id %q is not a uuid", res.RunID)
	}

	for _, t := range res.Tags {
		if !t.Category.Valid() {
			fail("tag %q has unknown category %q", t.Name, t.Category)
		}
		if t.Confidence < 0 || t.Confidence > 1 {
			fail("tag %q confidence %v outside [0,1]", t.Name, t.Confidence)
		}
	}

	if len(res.MatchResults) != len(req.Recipients) {
		fail("got %d match results for %d recipients", len(res.MatchResults), len(req.Recipients))
		return errors.Join(errs...)
	}

	byID := make(map[string]model.RecipientProfile, len(req.Recipients))
	var expected []model.MatchResult
	for i, m := range res.MatchResults {
		r := req.Recipients[i]
		byID[r.ID] = r
		if m.RecipientID != r.ID {
			fail("match %d is for %q, want %q", i, m.RecipientID, r.ID)
		}
		if m.ContentID != req.Content.ID {
			fail("match %d names content %q", i, m.ContentID)
		}
		if m.Score < catalog.MinScore || m.Score > catalog.MaxScore {
			fail("match %d score %v outside [0,100]", i, m.Score)
		}
		if math.Abs(m.Score*10-math.Round(m.Score*10)) > 1e-6 {
			fail("match %d score %v has more than one decimal", i, m.Score)
		}
		if len(m.Reasons) > maxReasons {
			fail("match %d has %d reasons", i, len(m.Reasons))
		}
		if m.Score >= catalog.RecommendThreshold {
			expected = append(expected, m)
		}
	}

	if len(res.Recommendations) != len(expected) {
		fail("got %d recommendations, want %d", len(res.Recommendations), len(expected))
		return errors.Join(errs...)
	}
	for i, rec := range res.Recommendations {
		want := expected[i]
		if rec.RecipientID != want.RecipientID || rec.Score != want.Score {
			fail("recommendation %d is %s@%v, want %s@%v", i, rec.RecipientID, rec.Score, want.RecipientID, want.Score)
			continue
		}
		verifyDraft(fail, i, byID[rec.RecipientID], req.Content, rec)
	}

	return errors.Join(errs...)
}

func verifyDraft(fail func(string, ...any), i int, r model.RecipientProfile, c model.ContentItem, rec model.Recommendation) {
	d := rec.Draft
	if d.Body == catalog.FallbackBody {
		if d.Subject != catalog.FallbackSubjectPrefix+c.Title {
			fail("recommendation %d fallback subject %q", i, d.Subject)
		}
		return
	}

	urgent := rec.Score > catalog.UrgentThreshold
	if urgent != (d.Tone == model.ToneUrgent) {
		fail("recommendation %d tone %s at score %v", i, d.Tone, rec.Score)
	}
	if urgent != strings.HasPrefix(d.Subject, catalog.SubjectUrgentPrefix) {
		fail("recommendation %d subject %q urgency mismatch", i, d.Subject)
	}
	kind := catalog.SubjectFeatureKind
	if strings.Contains(r.Company, catalog.NewspaperMarker) {
		kind = catalog.SubjectPressKind
	}
	if !strings.HasSuffix(d.Subject, kind+c.Title) {
		fail("recommendation %d subject %q, want kind %q", i, d.Subject, kind)
	}
	if !strings.Contains(d.Body, r.Name) {
		fail("recommendation %d body does not greet %q", i, r.Name)
	}
}
