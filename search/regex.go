package search

import (
	"fmt"
	"sync"

	"github.com/jonwraymond/fuzzmatch/fregex"
	"github.com/jonwraymond/fuzzmatch/token"
)

// RegexOptions carries per-call settings for regex search.
type RegexOptions struct {
	// Predef interprets the query as the name of a predefined pattern.
	Predef bool

	// NoPartial drops matches that do not align exactly with token
	// boundaries instead of extending them to cover the partially
	// matched tokens.
	NoPartial bool

	// MinR drops matches below this ratio. Zero keeps everything.
	MinR int

	// WeightProfile names the weight profile used to normalize fuzzy
	// edit counts. Empty means "indel".
	WeightProfile string
}

// RegexSearcher finds regex and fuzzy-regex matches on the character
// level and maps them back to token spans.
type RegexSearcher struct {
	mu      sync.RWMutex
	predefs map[string]string
}

// Commonly needed patterns, available by name with Predef set.
var commonPredefs = map[string]string{
	"emails":    `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
	"links":     `https?://[^\s<>"]+|www\.[^\s<>"]+`,
	"phones":    `\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`,
	"times":     `\d{1,2}:\d{2}(?::\d{2})?\s?(?:[AaPp]\.?[Mm]\.?)?`,
	"zip_codes": `\b\d{5}(?:[-\s]\d{4})?\b`,
}

// NewRegexSearcher returns a regex searcher preloaded with the common
// predefined patterns.
func NewRegexSearcher() *RegexSearcher {
	predefs := make(map[string]string, len(commonPredefs))
	for name, expr := range commonPredefs {
		predefs[name] = expr
	}
	return &RegexSearcher{predefs: predefs}
}

// RegisterPredef adds or replaces a named predefined pattern. The
// expression is compiled eagerly so bad patterns fail here, not at
// match time.
func (s *RegexSearcher) RegisterPredef(name, expr string) error {
	if _, err := fregex.CompileCached(expr); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predefs[name] = expr
	return nil
}

// Match returns the query's regex matches in doc as token spans, in
// document order. Matches from fuzzy patterns carry ratios normalized
// from their edit counts; exact matches are 100.
func (s *RegexSearcher) Match(doc *token.Sequence, query string, opts RegexOptions) ([]Match, error) {
	weights, err := fregex.GetWeights(opts.WeightProfile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	expr := query
	if opts.Predef {
		s.mu.RLock()
		predef, ok := s.predefs[query]
		s.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: unknown predefined pattern %q", ErrConfig, query)
		}
		expr = predef
	}
	pattern, err := fregex.CompileCached(expr)
	if err != nil {
		return nil, err
	}

	if doc.Len() == 0 {
		return nil, nil
	}

	text := doc.Text()
	base := doc.Token(0).CharOffset

	// Byte position -> covering token, within the view's text.
	charToTok := make(map[int]int)
	tokStart := make([]int, doc.Len())
	tokEnd := make([]int, doc.Len())
	for i := 0; i < doc.Len(); i++ {
		t := doc.Token(i)
		off := t.CharOffset - base
		tokStart[i] = off
		tokEnd[i] = off + len(t.Text)
		for b := tokStart[i]; b < tokEnd[i]; b++ {
			charToTok[b] = i
		}
	}

	var matches []Match
	for _, fm := range pattern.FindAll(text) {
		startTok, okStart := charToTok[fm.Start]
		endTok, okEnd := charToTok[fm.End-1]
		if !okStart || !okEnd {
			// Leading or trailing whitespace in the match; nothing to
			// snap those characters to.
			continue
		}
		aligned := fm.Start == tokStart[startTok] && fm.End == tokEnd[endTok]
		if !aligned && opts.NoPartial {
			continue
		}
		ratio := fregex.Normalize(fm.Text, fm.Counts, weights)
		if opts.MinR > 0 && ratio < opts.MinR {
			continue
		}
		matches = append(matches, Match{Start: startTok, End: endTok + 1, Ratio: ratio})
	}
	return matches, nil
}
