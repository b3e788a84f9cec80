// Package fuzzy ranks completion candidates against the token under the
// cursor. Scores are distance-like: 0 is a perfect match, and anything above
// the configured ceiling is dropped from the results.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// Candidate is a searchable item.
type Candidate struct {
	// Text is the string to match against.
	Text string

	// Data is arbitrary data associated with this candidate.
	Data any
}

// Span is a half-open [Start, End) rune index range within the candidate
// text that contributed to the match. Clients use spans for highlighting.
type Span struct {
	Start int
	End   int
}

// Match is one scored result.
type Match struct {
	Candidate Candidate

	// Score is the match distance; lower is better.
	Score float64

	// Spans are the matched subranges of Candidate.Text. Empty when the
	// match came from the edit-distance fallback rather than a character
	// subsequence.
	Spans []Span
}

// Options tunes the scorer. The exact weights are not a contract; ranking
// behavior is pinned by golden tests instead.
type Options struct {
	// MaxScore is the worst acceptable score. Candidates scoring above it
	// are excluded from the result set.
	MaxScore float64

	// CaseSensitive enables case-sensitive matching.
	// Default is false (case-insensitive).
	CaseSensitive bool

	// EditWeight scales the normalized edit-distance component.
	EditWeight float64
	// GapWeight penalizes holes between matched characters.
	GapWeight float64
	// LeadWeight penalizes matches that start away from the first character.
	LeadWeight float64
	// PrefixFactor multiplies (shrinks) the score when the query is an
	// exact prefix of the candidate.
	PrefixFactor float64
}

// DefaultOptions returns the tuning used by the completion pipeline.
func DefaultOptions() Options {
	return Options{
		MaxScore:     0.6,
		EditWeight:   0.5,
		GapWeight:    0.3,
		LeadWeight:   0.2,
		PrefixFactor: 0.5,
	}
}

// Matcher scores and ranks candidates. It is stateless apart from its
// options and safe for concurrent use.
type Matcher struct {
	options Options
	params  *levenshtein.Params
}

func New(opts Options) *Matcher {
	return &Matcher{
		options: opts,
		params:  levenshtein.NewParams(),
	}
}

// Search scores every candidate against query and returns the matches in
// ascending score order. Ties keep the original candidate order. An empty
// query matches everything with a zero score; an empty candidate list or a
// query nothing matches both yield an empty result.
func (m *Matcher) Search(candidates []Candidate, query string) []Match {
	if !m.options.CaseSensitive {
		query = strings.ToLower(query)
	}

	if query == "" {
		results := make([]Match, len(candidates))
		for i, c := range candidates {
			results[i] = Match{Candidate: c}
		}
		return results
	}

	queryRunes := []rune(query)
	results := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		score, spans, ok := m.score(queryRunes, query, c.Text)
		if !ok {
			continue
		}
		results = append(results, Match{Candidate: c, Score: score, Spans: spans})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	return results
}

func (m *Matcher) score(queryRunes []rune, query, text string) (float64, []Span, bool) {
	if text == "" {
		return 0, nil, false
	}
	folded := text
	if !m.options.CaseSensitive {
		folded = strings.ToLower(text)
	}

	proximity := 1 - levenshtein.Similarity(query, folded, m.params)

	indices, ok := subsequenceIndices(queryRunes, []rune(folded))
	if !ok {
		// No character subsequence; tolerate typos through edit distance
		// alone, which still has to clear the score ceiling.
		if proximity > m.options.MaxScore {
			return 0, nil, false
		}
		return proximity, nil, true
	}

	textLen := len([]rune(folded))
	lead := indices[0]
	gap := indices[len(indices)-1] - indices[0] - (len(indices) - 1)

	score := m.options.EditWeight*proximity +
		m.options.GapWeight*(float64(gap)/float64(textLen)) +
		m.options.LeadWeight*(float64(lead)/float64(textLen))
	if strings.HasPrefix(folded, query) {
		score *= m.options.PrefixFactor
	}
	if score > m.options.MaxScore {
		return 0, nil, false
	}
	return score, compressSpans(indices), true
}

// subsequenceIndices finds the greedy left-to-right positions of queryRunes
// within textRunes. All query characters must be present, in order.
func subsequenceIndices(queryRunes, textRunes []rune) ([]int, bool) {
	indices := make([]int, 0, len(queryRunes))
	queryIdx := 0
	for i := 0; i < len(textRunes) && queryIdx < len(queryRunes); i++ {
		if textRunes[i] == queryRunes[queryIdx] {
			indices = append(indices, i)
			queryIdx++
		}
	}
	if queryIdx != len(queryRunes) {
		return nil, false
	}
	return indices, true
}

// compressSpans folds runs of consecutive indices into spans.
func compressSpans(indices []int) []Span {
	if len(indices) == 0 {
		return nil
	}
	spans := []Span{{Start: indices[0], End: indices[0] + 1}}
	for _, idx := range indices[1:] {
		last := &spans[len(spans)-1]
		if idx == last.End {
			last.End++
			continue
		}
		spans = append(spans, Span{Start: idx, End: idx + 1})
	}
	return spans
}
