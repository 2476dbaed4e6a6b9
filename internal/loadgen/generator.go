package loadgen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/outreach/internal/domain/catalog"
	"github.com/okian/outreach/internal/domain/model"
)

const (
	maxTitleKeywords   = 3
	maxCompanyKeywords = 2
	newspaperOneIn     = 3
)

var outlets = []string{"Times", "Herald", "Weekly", "Review", "Journal", "Post"} //nolint:gochecknoglobals // fixed word list

// Generator builds synthetic requests. It is not safe for concurrent use.
type Generator struct {
	rng      *rand.Rand
	keywords []string
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // synthetic data
		keywords: catalog.Keywords(),
	}
}

// Requests returns n requests with recipients each.
func (g *Generator) Requests(n, recipients int) []ProcessRequest {
	out := make([]ProcessRequest, n)
	for i := range out {
		out[i] = g.Request(recipients)
	}
	return out
}

// Request builds one request whose content and companies draw on the keyword catalog,
// so scores land both below and above the recommendation threshold.
func (g *Generator) Request(recipients int) ProcessRequest {
	title := g.pick(1 + g.rng.Intn(maxTitleKeywords))
	content := model.ContentItem{
		ID:      uuid.NewString(),
		Title:   "Announcing our " + strings.Join(title, " and ") + " initiative",
		Summary: "A new programme around " + strings.Join(g.pick(1), ", ") + ".",
		Body:    "Full release text.",
		Status:  "published",
	}

	rs := make([]model.RecipientProfile, recipients)
	for i := range rs {
		company := strings.Join(g.pick(g.rng.Intn(maxCompanyKeywords+1)), " ")
		outlet := outlets[g.rng.Intn(len(outlets))]
		if g.rng.Intn(newspaperOneIn) == 0 {
			outlet = catalog.NewspaperMarker
		}
		rs[i] = model.RecipientProfile{
			ID:      fmt.Sprintf("r-%d", i),
			Name:    fmt.Sprintf("Reporter %d", i),
			Email:   fmt.Sprintf("reporter%d@example.com", i),
			Company: strings.TrimSpace(company + " " + outlet),
		}
	}
	return ProcessRequest{Content: content, Recipients: rs}
}

// pick returns n distinct catalog keywords.
func (g *Generator) pick(n int) []string {
	idx := g.rng.Perm(len(g.keywords))
	out := make([]string, 0, n)
	for _, i := range idx[:min(n, len(idx))] {
		out = append(out, g.keywords[i])
	}
	return out
}
