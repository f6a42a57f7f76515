package matcher

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jonwraymond/fuzzmatch/search"
	"github.com/jonwraymond/fuzzmatch/token"
)

// Error values for matcher operations.
var (
	ErrUnknownLabel   = errors.New("unknown label")
	ErrConfigMismatch = errors.New("pattern and config counts differ")
)

// Match is a labeled, accepted span in document token coordinates.
type Match struct {
	Label string
	Start int
	End   int
	Ratio int
}

// Callback is invoked once per match, in position order, after a Match
// call completes. Callbacks can inspect the full result set.
type Callback func(doc *token.Sequence, i int, matches []Match)

// phrasePattern pairs a query with its optional config override.
type phrasePattern struct {
	seq *token.Sequence
	cfg *search.Config
}

// Options configures a Matcher.
type Options struct {
	// Defaults applies to patterns added without their own config.
	// Nil means search.DefaultConfig.
	Defaults *search.Config
}

// Matcher holds labeled phrase patterns and matches them with the
// fuzzy phrase searcher.
type Matcher struct {
	mu        sync.RWMutex
	defaults  *search.Config
	searcher  *search.PhraseSearcher
	patterns  map[string][]phrasePattern
	callbacks map[string]Callback
	order     []string
}

// New creates a phrase matcher with the given options.
func New(opts Options) *Matcher {
	return &Matcher{
		defaults:  opts.Defaults,
		searcher:  search.NewPhraseSearcher(),
		patterns:  make(map[string][]phrasePattern),
		callbacks: make(map[string]Callback),
	}
}

// Add registers patterns under a label. cfgs may be nil (all patterns
// use the matcher defaults) or parallel to patterns, where a nil entry
// again means the defaults.
func (m *Matcher) Add(label string, patterns []*token.Sequence, cfgs []*search.Config) error {
	if cfgs != nil && len(cfgs) != len(patterns) {
		return fmt.Errorf("%w: %d patterns, %d configs", ErrConfigMismatch, len(patterns), len(cfgs))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patterns[label]; !ok {
		m.order = append(m.order, label)
	}
	for i, seq := range patterns {
		var cfg *search.Config
		if cfgs != nil {
			cfg = cfgs[i]
		}
		m.patterns[label] = append(m.patterns[label], phrasePattern{seq: seq, cfg: cfg})
	}
	return nil
}

// OnMatch registers a callback for a label. A nil callback clears it.
func (m *Matcher) OnMatch(label string, cb Callback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cb == nil {
		delete(m.callbacks, label)
		return
	}
	m.callbacks[label] = cb
}

// Remove drops all patterns and the callback for a label.
func (m *Matcher) Remove(label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patterns[label]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	delete(m.patterns, label)
	delete(m.callbacks, label)
	for i, l := range m.order {
		if l == label {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Labels returns the labels in insertion order.
func (m *Matcher) Labels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of labels.
func (m *Matcher) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.patterns)
}

// Contains reports whether the label has patterns.
func (m *Matcher) Contains(label string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.patterns[label]
	return ok
}

// Match runs every pattern of every label over doc. Results are
// de-duplicated across patterns sharing a label, sorted by ascending
// start, then descending end, then descending ratio, and passed to any
// registered callbacks. Overlap between different labels is preserved.
func (m *Matcher) Match(doc *token.Sequence) ([]Match, []search.Diagnostic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[Match]struct{})
	var matches []Match
	var diags []search.Diagnostic
	for _, label := range m.order {
		for _, p := range m.patterns[label] {
			cfg := p.cfg
			if cfg == nil {
				cfg = m.defaults
			}
			found, ds, err := m.searcher.Match(doc, p.seq, cfg)
			if err != nil {
				return nil, nil, fmt.Errorf("label %q: %w", label, err)
			}
			diags = append(diags, ds...)
			for _, f := range found {
				lm := Match{Label: label, Start: f.Start, End: f.End, Ratio: f.Ratio}
				if _, dup := seen[lm]; dup {
					continue
				}
				seen[lm] = struct{}{}
				matches = append(matches, lm)
			}
		}
	}
	if len(matches) == 0 {
		return nil, diags, nil
	}

	sortMatches(matches)
	for i := range matches {
		if cb := m.callbacks[matches[i].Label]; cb != nil {
			cb(doc, i, matches)
		}
	}
	return matches, diags, nil
}

// sortMatches orders labeled matches by ascending start, descending
// end, then descending ratio.
func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		if matches[i].End != matches[j].End {
			return matches[i].End > matches[j].End
		}
		if matches[i].Ratio != matches[j].Ratio {
			return matches[i].Ratio > matches[j].Ratio
		}
		return matches[i].Label < matches[j].Label
	})
}
