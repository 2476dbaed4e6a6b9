// Package keyword finds catalog words inside free text.
//
// Matching is case-insensitive substring matching. All words of a catalog are
// compiled into one Aho-Corasick automaton so a text is scanned once no matter
// how many words the catalog has.
package keyword

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lowercases s using Unicode case mapping.
func Normalize(s string) string {
	// Casers keep state; a fresh one per call keeps Normalize safe for concurrent use.
	return cases.Lower(language.Und).String(s)
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Normalize(s), Normalize(substr))
}

// Matcher finds which words of a fixed catalog occur in a text.
// It is safe for concurrent use.
type Matcher struct {
	words []string // catalog words in catalog order, as given
	slot  []int    // words[i] -> index into the automaton dictionary, -1 when empty
	dict  []string // unique normalized words
	ac    *ahocorasick.Matcher
}

// NewMatcher compiles words. Empty words never match; duplicates after
// normalization share one automaton entry.
func NewMatcher(words []string) *Matcher {
	m := &Matcher{
		words: append([]string(nil), words...),
		slot:  make([]int, len(words)),
	}
	seen := make(map[string]int, len(words))
	for i, w := range words {
		n := Normalize(w)
		if n == "" {
			m.slot[i] = -1
			continue
		}
		idx, ok := seen[n]
		if !ok {
			idx = len(m.dict)
			seen[n] = idx
			m.dict = append(m.dict, n)
		}
		m.slot[i] = idx
	}
	if len(m.dict) > 0 {
		m.ac = ahocorasick.NewStringMatcher(m.dict)
	}
	return m
}

// Words returns the catalog the matcher was built from.
func (m *Matcher) Words() []string {
	return append([]string(nil), m.words...)
}

// Find returns the catalog words that occur in text, in catalog order.
func (m *Matcher) Find(text string) []string {
	return m.FindNormalized(Normalize(text))
}

// FindNormalized is Find for text that already went through Normalize.
func (m *Matcher) FindNormalized(text string) []string {
	if m.ac == nil || text == "" {
		return []string{}
	}
	hit := make([]bool, len(m.dict))
	for _, idx := range m.ac.MatchThreadSafe([]byte(text)) {
		if idx >= 0 && idx < len(hit) {
			hit[idx] = true
		}
	}
	found := make([]string, 0, len(m.words))
	for i, w := range m.words {
		if s := m.slot[i]; s >= 0 && hit[s] {
			found = append(found, w)
		}
	}
	return found
}

// Intersect returns the words of a that are contained, ignoring case, in at
// least one word of b. Order follows a.
func Intersect(a, b []string) []string {
	out := make([]string, 0, len(a))
	for _, x := range a {
		for _, y := range b {
			if ContainsFold(y, x) {
				out = append(out, x)
				break
			}
		}
	}
	return out
}
