package matcher

import (
	"fmt"
	"sync"

	"github.com/jonwraymond/fuzzmatch/search"
	"github.com/jonwraymond/fuzzmatch/token"
)

// regexPattern pairs an expression (or predef name) with its options.
type regexPattern struct {
	expr string
	opts search.RegexOptions
}

// RegexMatcher holds labeled regex and fuzzy-regex patterns.
type RegexMatcher struct {
	mu       sync.RWMutex
	searcher *search.RegexSearcher
	patterns map[string][]regexPattern
	order    []string
}

// NewRegexMatcher creates a regex matcher preloaded with the common
// predefined patterns.
func NewRegexMatcher() *RegexMatcher {
	return &RegexMatcher{
		searcher: search.NewRegexSearcher(),
		patterns: make(map[string][]regexPattern),
	}
}

// RegisterPredef adds a predefined pattern usable by name from any
// pattern added with Predef set.
func (m *RegexMatcher) RegisterPredef(name, expr string) error {
	return m.searcher.RegisterPredef(name, expr)
}

// Add registers expressions under a label. opts may be nil (zero-value
// options for every expression) or parallel to exprs.
func (m *RegexMatcher) Add(label string, exprs []string, opts []search.RegexOptions) error {
	if opts != nil && len(opts) != len(exprs) {
		return fmt.Errorf("%w: %d patterns, %d option sets", ErrConfigMismatch, len(exprs), len(opts))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patterns[label]; !ok {
		m.order = append(m.order, label)
	}
	for i, expr := range exprs {
		var o search.RegexOptions
		if opts != nil {
			o = opts[i]
		}
		m.patterns[label] = append(m.patterns[label], regexPattern{expr: expr, opts: o})
	}
	return nil
}

// Remove drops all patterns for a label.
func (m *RegexMatcher) Remove(label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patterns[label]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	delete(m.patterns, label)
	for i, l := range m.order {
		if l == label {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Labels returns the labels in insertion order.
func (m *RegexMatcher) Labels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of labels.
func (m *RegexMatcher) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.patterns)
}

// Contains reports whether the label has patterns.
func (m *RegexMatcher) Contains(label string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.patterns[label]
	return ok
}

// Match runs every pattern of every label over doc. Results carry their
// labels and are sorted by ascending start, descending end, descending
// ratio. Duplicate spans within a label collapse.
func (m *RegexMatcher) Match(doc *token.Sequence) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[Match]struct{})
	var matches []Match
	for _, label := range m.order {
		for _, p := range m.patterns[label] {
			found, err := m.searcher.Match(doc, p.expr, p.opts)
			if err != nil {
				return nil, fmt.Errorf("label %q: %w", label, err)
			}
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
	sortMatches(matches)
	return matches, nil
}
