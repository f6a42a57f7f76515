package compare

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jonwraymond/fuzzmatch/token"
)

// Error values for comparator resolution.
var (
	ErrUnknownComparator = errors.New("unknown comparator")
)

// Options carries per-call comparator settings.
type Options struct {
	// IgnoreCase case-folds both sides before scoring. It only affects
	// the edit-ratio comparators; vector similarity is case-blind.
	IgnoreCase bool
}

// Comparator scores two token sequences on a 0-100 scale.
// Implementations must be pure, deterministic, and clamp their output
// to [0, 100].
type Comparator interface {
	Compare(query, reference *token.Sequence, opts Options) int
}

var (
	mu       sync.RWMutex
	registry = map[string]Comparator{}
	ratios   = map[string]RatioFunc{}
)

// Register adds or replaces a named comparator.
func Register(name string, c Comparator) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = c
}

// Get resolves a comparator by name. The empty string resolves to
// "simple".
func Get(name string) (Comparator, error) {
	if name == "" {
		name = "simple"
	}
	mu.RLock()
	defer mu.RUnlock()
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComparator, name)
	}
	return c, nil
}

// RegisterRatio adds or replaces a named string-level ratio function
// and its sequence-level comparator wrapping.
func RegisterRatio(name string, fn RatioFunc) {
	mu.Lock()
	ratios[name] = fn
	registry[name] = ratioComparator{fn: fn}
	mu.Unlock()
}

// GetRatio resolves a string-level ratio function by name. The empty
// string resolves to "simple". Comparators without a string form (such
// as "similarity") are not resolvable here.
func GetRatio(name string) (RatioFunc, error) {
	if name == "" {
		name = "simple"
	}
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := ratios[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComparator, name)
	}
	return fn, nil
}

// Names returns the registered comparator names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RatioFunc scores two strings on a 0-100 scale.
type RatioFunc func(a, b string) int

// ratioComparator adapts a string-level ratio function to the
// Comparator contract, handling text extraction and case folding.
type ratioComparator struct {
	fn RatioFunc
}

// Ratio wraps a string-level ratio function as a Comparator.
func Ratio(fn RatioFunc) Comparator {
	return ratioComparator{fn: fn}
}

func (rc ratioComparator) Compare(query, reference *token.Sequence, opts Options) int {
	a := query.Text()
	b := reference.Text()
	if opts.IgnoreCase {
		a = fold(a)
		b = fold(b)
	}
	return clamp(rc.fn(a, b))
}

// fold lower-cases per Unicode case folding rules. A fresh Caser is
// created per call: cases.Caser carries internal transform state and is
// not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

func clamp(r int) int {
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}

func init() {
	RegisterRatio("simple", SimpleRatio)
	RegisterRatio("partial", PartialRatio)
	RegisterRatio("token_sort", TokenSortRatio)
	RegisterRatio("token_set", TokenSetRatio)
	RegisterRatio("weighted", WeightedRatio)
	RegisterRatio("quick_lev", QuickLevRatio)
	RegisterRatio("jaro_winkler", JaroWinklerRatio)
	Register("similarity", Similarity())
}
