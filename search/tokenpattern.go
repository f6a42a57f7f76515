package search

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"

	"github.com/jonwraymond/fuzzmatch/compare"
	"github.com/jonwraymond/fuzzmatch/fregex"
	"github.com/jonwraymond/fuzzmatch/token"
)

// ConstraintKind selects how a single pattern position is matched.
type ConstraintKind int

const (
	// KindAny places no constraint on the token.
	KindAny ConstraintKind = iota
	// KindExact requires the literal token text. Final validation is
	// the caller's concern; exact positions always pass here.
	KindExact
	// KindFuzzy requires an edit-ratio match above a threshold.
	KindFuzzy
	// KindFuzzyRegex requires a fuzzy-regex match above a threshold.
	KindFuzzyRegex
)

// String returns the kind's configuration name.
func (k ConstraintKind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindFuzzy:
		return "fuzzy"
	case KindFuzzyRegex:
		return "fregex"
	default:
		return "any"
	}
}

// ParseConstraintKind is the inverse of ConstraintKind.String.
func ParseConstraintKind(s string) (ConstraintKind, error) {
	switch s {
	case "any", "":
		return KindAny, nil
	case "exact":
		return KindExact, nil
	case "fuzzy":
		return KindFuzzy, nil
	case "fregex":
		return KindFuzzyRegex, nil
	}
	return KindAny, fmt.Errorf("%w: unknown constraint kind %q", ErrConfig, s)
}

// Constraint is one position of a token pattern.
type Constraint struct {
	Kind ConstraintKind

	// Text is the literal (exact, fuzzy) or pattern (fregex) to match.
	Text string

	// CaseSensitive disables the default case folding.
	CaseSensitive bool

	// MinR overrides the searcher-level ratio threshold for this
	// position. Zero defers to the searcher default.
	MinR int

	// Comparator names the ratio function for fuzzy positions. Empty
	// defers to the searcher default.
	Comparator string

	// WeightProfile names the weight profile for fregex positions.
	// Empty means "indel".
	WeightProfile string
}

// Any returns an unconstrained pattern position.
func Any() Constraint { return Constraint{Kind: KindAny} }

// ExactText returns an exact pattern position.
func ExactText(text string) Constraint { return Constraint{Kind: KindExact, Text: text} }

// FuzzyText returns a fuzzy pattern position.
func FuzzyText(text string) Constraint { return Constraint{Kind: KindFuzzy, Text: text} }

// FuzzyRegex returns a fuzzy-regex pattern position.
func FuzzyRegex(expr string) Constraint { return Constraint{Kind: KindFuzzyRegex, Text: expr} }

// TokenMatch is one evaluated pattern position in a passing window.
type TokenMatch struct {
	Kind  ConstraintKind
	Text  string
	Ratio int
}

// Record is the evaluation of one fully-passing window: one TokenMatch
// per constraint, in pattern order. Records carry no positions; they
// are match candidates whose exact boundaries the caller re-validates.
type Record []TokenMatch

// TokenConfig carries searcher-level defaults for token patterns.
type TokenConfig struct {
	// MinR is the default ratio threshold. Zero means 75.
	MinR int

	// Comparator is the default fuzzy ratio function. Empty means
	// "simple".
	Comparator string
}

// TokenSearcher matches fixed-length sequences of per-token constraints
// against every window of a document. It is stateless and safe for
// concurrent use.
type TokenSearcher struct{}

// NewTokenSearcher returns a token searcher.
func NewTokenSearcher() *TokenSearcher {
	return &TokenSearcher{}
}

// evaluator scores one token against one constraint.
type evaluator func(text string) (TokenMatch, bool)

// Match evaluates the constraint sequence against every window of doc.
// Windows are abandoned at the first failing fuzzy or fregex position.
// Consecutive windows that evaluate identically collapse to a single
// record; the dedup is adjacency-only by design.
func (s *TokenSearcher) Match(doc *token.Sequence, constraints []Constraint, cfg *TokenConfig) ([]Record, error) {
	if len(constraints) == 0 {
		return nil, fmt.Errorf("%w: pattern cannot have zero constraints", ErrConfig)
	}
	if cfg == nil {
		cfg = &TokenConfig{}
	}
	defaultMinR := cfg.MinR
	if defaultMinR == 0 {
		defaultMinR = 75
	}

	evals := make([]evaluator, len(constraints))
	for i, c := range constraints {
		ev, err := buildEvaluator(c, defaultMinR, cfg.Comparator)
		if err != nil {
			return nil, err
		}
		evals[i] = ev
	}

	n := len(constraints)
	var records []Record
	var prevDigest uint64
	havePrev := false
	for w := 0; w+n <= doc.Len(); w++ {
		rec := make(Record, 0, n)
		ok := true
		for i, ev := range evals {
			tm, pass := ev(doc.Token(w + i).Text)
			if !pass {
				ok = false
				break
			}
			rec = append(rec, tm)
		}
		if !ok {
			// A failing window breaks adjacency; an identical record
			// after the gap is a fresh result.
			havePrev = false
			continue
		}
		digest := rec.digest()
		if havePrev && digest == prevDigest {
			continue
		}
		records = append(records, rec)
		prevDigest = digest
		havePrev = true
	}
	return records, nil
}

// buildEvaluator resolves a constraint's comparator, pattern and
// thresholds up front so configuration errors surface before scanning.
func buildEvaluator(c Constraint, defaultMinR int, defaultCmp string) (evaluator, error) {
	switch c.Kind {
	case KindAny, KindExact:
		kind := c.Kind
		return func(text string) (TokenMatch, bool) {
			return TokenMatch{Kind: kind, Text: text, Ratio: 100}, true
		}, nil

	case KindFuzzy:
		name := c.Comparator
		if name == "" {
			name = defaultCmp
		}
		fn, err := compare.GetRatio(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		minR := c.MinR
		if minR == 0 {
			minR = defaultMinR
		}
		want := c.Text
		fold := !c.CaseSensitive
		if fold {
			want = foldCase(want)
		}
		return func(text string) (TokenMatch, bool) {
			got := text
			if fold {
				got = foldCase(got)
			}
			r := fn(got, want)
			if r < minR {
				return TokenMatch{}, false
			}
			return TokenMatch{Kind: KindFuzzy, Text: text, Ratio: r}, true
		}, nil

	case KindFuzzyRegex:
		pattern, err := fregex.CompileCached(c.Text)
		if err != nil {
			return nil, err
		}
		weights, err := fregex.GetWeights(c.WeightProfile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		minR := c.MinR
		if minR == 0 {
			minR = defaultMinR
		}
		fold := !c.CaseSensitive
		return func(text string) (TokenMatch, bool) {
			got := text
			if fold {
				got = foldCase(got)
			}
			counts, ok := pattern.MatchText(got)
			if !ok {
				return TokenMatch{}, false
			}
			r := fregex.Normalize(got, counts, weights)
			if r < minR {
				return TokenMatch{}, false
			}
			return TokenMatch{Kind: KindFuzzyRegex, Text: text, Ratio: r}, true
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown constraint kind %d", ErrConfig, c.Kind)
	}
}

// digest hashes a record for adjacent-duplicate collapsing.
func (r Record) digest() uint64 {
	d := xxhash.New()
	var sep = [1]byte{0}
	for _, tm := range r {
		_, _ = d.Write([]byte{byte(tm.Kind)})
		_, _ = d.WriteString(tm.Text)
		_, _ = d.Write(sep[:])
		_, _ = d.Write([]byte{byte(tm.Ratio)})
	}
	return d.Sum64()
}

func foldCase(s string) string {
	return cases.Fold().String(s)
}
