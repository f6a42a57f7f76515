package matcher

import (
	"fmt"
	"sync"

	"github.com/jonwraymond/fuzzmatch/search"
	"github.com/jonwraymond/fuzzmatch/token"
)

// LabeledRecord is one passing token-pattern window with the label of
// the pattern that produced it.
type LabeledRecord struct {
	Label  string
	Record search.Record
}

// TokenOptions configures a TokenMatcher.
type TokenOptions struct {
	// Defaults applies to patterns added without their own config.
	Defaults *search.TokenConfig
}

// tokenPattern pairs a constraint sequence with its optional config.
type tokenPattern struct {
	constraints []search.Constraint
	cfg         *search.TokenConfig
}

// TokenMatcher holds labeled per-token constraint patterns.
type TokenMatcher struct {
	mu       sync.RWMutex
	defaults *search.TokenConfig
	searcher *search.TokenSearcher
	patterns map[string][]tokenPattern
	order    []string
}

// NewTokenMatcher creates a token matcher with the given options.
func NewTokenMatcher(opts TokenOptions) *TokenMatcher {
	return &TokenMatcher{
		defaults: opts.Defaults,
		searcher: search.NewTokenSearcher(),
		patterns: make(map[string][]tokenPattern),
	}
}

// Add registers constraint patterns under a label. cfgs may be nil or
// parallel to patterns; nil entries use the matcher defaults.
func (m *TokenMatcher) Add(label string, patterns [][]search.Constraint, cfgs []*search.TokenConfig) error {
	if cfgs != nil && len(cfgs) != len(patterns) {
		return fmt.Errorf("%w: %d patterns, %d configs", ErrConfigMismatch, len(patterns), len(cfgs))
	}
	for _, p := range patterns {
		if len(p) == 0 {
			return fmt.Errorf("%w: pattern cannot have zero constraints", search.ErrConfig)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patterns[label]; !ok {
		m.order = append(m.order, label)
	}
	for i, p := range patterns {
		var cfg *search.TokenConfig
		if cfgs != nil {
			cfg = cfgs[i]
		}
		m.patterns[label] = append(m.patterns[label], tokenPattern{constraints: p, cfg: cfg})
	}
	return nil
}

// Remove drops all patterns for a label.
func (m *TokenMatcher) Remove(label string) error {
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
func (m *TokenMatcher) Labels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of labels.
func (m *TokenMatcher) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.patterns)
}

// Contains reports whether the label has patterns.
func (m *TokenMatcher) Contains(label string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.patterns[label]
	return ok
}

// Match evaluates every pattern of every label over doc and returns the
// passing windows with their labels, grouped by label in insertion
// order.
func (m *TokenMatcher) Match(doc *token.Sequence) ([]LabeledRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []LabeledRecord
	for _, label := range m.order {
		for _, p := range m.patterns[label] {
			cfg := p.cfg
			if cfg == nil {
				cfg = m.defaults
			}
			records, err := m.searcher.Match(doc, p.constraints, cfg)
			if err != nil {
				return nil, fmt.Errorf("label %q: %w", label, err)
			}
			for _, rec := range records {
				out = append(out, LabeledRecord{Label: label, Record: rec})
			}
		}
	}
	return out, nil
}
