package search

import (
	"sort"

	"github.com/jonwraymond/fuzzmatch/token"
)

// Match is one accepted phrase match: a half-open token-index range in
// document coordinates and its 0-100 ratio. Label attachment is the
// caller's concern.
type Match struct {
	Start int
	End   int
	Ratio int
}

// candidate is a scan hit awaiting boundary optimization.
type candidate struct {
	pos   int
	ratio int
}

// PhraseSearcher finds approximate occurrences of a query phrase in a
// document using a windowed scan followed by greedy boundary
// optimization. It is stateless; one searcher may serve many goroutines.
type PhraseSearcher struct{}

// NewPhraseSearcher returns a phrase searcher.
func NewPhraseSearcher() *PhraseSearcher {
	return &PhraseSearcher{}
}

// Match returns the query's matches in doc, ranked by descending ratio
// with ties broken by earliest start, already de-overlapped. An empty
// query or a document shorter than the query yields no matches and no
// error. Diagnostics report non-fatal config adjustments (clamped flex,
// coerced ratios).
func (s *PhraseSearcher) Match(doc, query *token.Sequence, cfg *Config) ([]Match, []Diagnostic, error) {
	res, diags, err := resolveConfig(cfg, query.Len())
	if err != nil {
		return nil, nil, err
	}
	if query.Len() == 0 || doc.Len() < query.Len() {
		return nil, diags, nil
	}

	candidates := s.scan(doc, query, res)
	matches := make([]Match, 0, len(candidates))
	for _, cand := range candidates {
		if m, ok := s.optimize(doc, query, cand, res); ok {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		return nil, diags, nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Ratio != matches[j].Ratio {
			return matches[i].Ratio > matches[j].Ratio
		}
		return matches[i].Start < matches[j].Start
	})
	matches = filterOverlapping(matches)
	if res.limit > 0 && len(matches) > res.limit {
		matches = matches[:res.limit]
	}
	return matches, diags, nil
}

// Best returns the single best match, if any.
func (s *PhraseSearcher) Best(doc, query *token.Sequence, cfg *Config) (Match, bool, error) {
	matches, _, err := s.Match(doc, query, cfg)
	if err != nil || len(matches) == 0 {
		return Match{}, false, err
	}
	return matches[0], true, nil
}

// scan slides a query-width window across doc at stride 1, keeping every
// position whose ratio clears the scan threshold.
func (s *PhraseSearcher) scan(doc, query *token.Sequence, res resolved) []candidate {
	var out []candidate
	qLen := query.Len()
	for i := 0; i+qLen <= doc.Len(); i++ {
		r := res.cmp.Compare(query, doc.Slice(i, i+qLen), res.opts)
		if r >= res.minR1 {
			out = append(out, candidate{pos: i, ratio: r})
		}
	}
	return out
}

// optimize flexes a candidate's boundaries looking for a better-scoring
// sub-range. Each flex round evaluates up to six perturbations against
// the running best; an improvement immediately becomes the new baseline
// for the perturbations that follow it. The greedy, order-dependent
// walk is intentional; downstream scores depend on it. A round without
// improvement stops the search.
func (s *PhraseSearcher) optimize(doc, query *token.Sequence, cand candidate, res resolved) (Match, bool) {
	qLen := query.Len()
	start, end := cand.pos, cand.pos+qLen
	best := cand.ratio

	if res.flex > 0 && best < res.thresh {
		for f := 1; f <= res.flex; f++ {
			improved := false
			try := func(a, b int) {
				if a < 0 || b > doc.Len() || a >= b {
					return
				}
				if r := res.cmp.Compare(query, doc.Slice(a, b), res.opts); r > best {
					best, start, end = r, a, b
					improved = true
				}
			}
			try(cand.pos+f, end)          // shrink left
			try(cand.pos-f, end)          // grow left
			try(start, end-f)             // shrink right
			try(start, end+f)             // grow right
			try(cand.pos-f, end+f)        // grow both
			try(cand.pos+f, end-f)        // shrink both
			if !improved {
				break
			}
		}
	}

	if best >= res.minR2 {
		return Match{Start: start, End: end, Ratio: best}, true
	}
	return Match{}, false
}
