package search

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/jonwraymond/fuzzmatch/compare"
	"github.com/jonwraymond/fuzzmatch/fregex"
)

// Error values for configuration resolution.
var (
	ErrConfig = errors.New("invalid configuration")
)

// Unset marks a ratio field as not provided, letting resolution derive
// it from the other knobs.
const Unset = -1

// Flex controls how far match boundaries may move during optimization.
// The zero value resolves to half the query length. Positive values are
// explicit token counts, clamped into [0, len(query)].
type Flex int

const (
	// FlexDefault resolves to len(query) / 2.
	FlexDefault Flex = 0
	// FlexMax resolves to len(query).
	FlexMax Flex = -1
	// FlexMin disables boundary optimization.
	FlexMin Flex = -2
)

// ParseFlex converts the string form of a flex setting ("default",
// "max", "min", or an integer) back into a Flex value.
func ParseFlex(s string) (Flex, error) {
	switch s {
	case "default", "":
		return FlexDefault, nil
	case "max":
		return FlexMax, nil
	case "min":
		return FlexMin, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return FlexDefault, fmt.Errorf("%w: flex %q", ErrConfig, s)
	}
	if n == 0 {
		return FlexMin, nil
	}
	return Flex(n), nil
}

// String renders the flex setting in its configuration form.
func (f Flex) String() string {
	switch f {
	case FlexDefault:
		return "default"
	case FlexMax:
		return "max"
	case FlexMin:
		return "min"
	}
	return strconv.Itoa(int(f))
}

// Config carries the tunable settings for one phrase-search call.
// A nil *Config means DefaultConfig. Ratio fields set to Unset are
// derived during resolution; explicit values, including zero, are taken
// literally.
type Config struct {
	// Comparator names the scoring strategy. Empty means "simple".
	Comparator string

	// CaseSensitive disables the case folding the edit-ratio
	// comparators apply by default.
	CaseSensitive bool

	// Flex is the boundary-optimization radius.
	Flex Flex

	// MinR is the single caller-facing ratio knob: it becomes MinR2
	// when MinR2 is Unset.
	MinR int

	// MinR1 is the minimum ratio to survive the initial scan.
	// Unset derives round(MinR2 / 1.5).
	MinR1 int

	// MinR2 is the minimum ratio for final acceptance.
	MinR2 int

	// Thresh is the ratio at which a candidate skips optimization.
	Thresh int

	// WeightProfile names the fuzzy-regex weight profile. Only regex
	// paths consult it. Empty means "indel".
	WeightProfile string

	// Limit caps the number of returned matches after overlap
	// filtering. Zero returns all.
	Limit int
}

// DefaultConfig returns the stock configuration: simple comparator,
// case folding on, default flex, min_r 75, thresh 100.
func DefaultConfig() Config {
	return Config{
		MinR:   75,
		MinR1:  Unset,
		MinR2:  Unset,
		Thresh: 100,
	}
}

// Diagnostic is a non-fatal note produced during config resolution,
// returned alongside results instead of being logged.
type Diagnostic struct {
	Code    string
	Message string
}

// Diagnostic codes.
const (
	DiagFlexClamped  = "flex_clamped"
	DiagRatioCoerced = "ratio_coerced"
)

// resolved is a fully-derived configuration ready for scanning.
type resolved struct {
	cmp     compare.Comparator
	opts    compare.Options
	flex    int
	minR1   int
	minR2   int
	thresh  int
	weights fregex.Weights
	limit   int
}

// resolve validates cfg and derives the effective settings for a query
// of queryLen tokens. Clamps and coercions surface as diagnostics;
// unknown names and out-of-range ratios are errors.
func resolveConfig(cfg *Config, queryLen int) (resolved, []Diagnostic, error) {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}

	var res resolved
	var diags []Diagnostic

	cmp, err := compare.Get(cfg.Comparator)
	if err != nil {
		return res, nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	res.cmp = cmp
	res.opts = compare.Options{IgnoreCase: !cfg.CaseSensitive}

	weights, err := fregex.GetWeights(cfg.WeightProfile)
	if err != nil {
		return res, nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	res.weights = weights

	for _, r := range []struct {
		name string
		val  int
	}{
		{"min_r", cfg.MinR},
		{"min_r1", cfg.MinR1},
		{"min_r2", cfg.MinR2},
		{"thresh", cfg.Thresh},
	} {
		if r.val != Unset && (r.val < 0 || r.val > 100) {
			return res, nil, fmt.Errorf("%w: %s %d out of range [0, 100]", ErrConfig, r.name, r.val)
		}
	}

	res.minR2 = cfg.MinR2
	if res.minR2 == Unset {
		res.minR2 = cfg.MinR
		if res.minR2 == Unset {
			res.minR2 = 75
		}
	}
	res.minR1 = cfg.MinR1
	if res.minR1 == Unset {
		res.minR1 = int(math.Round(float64(res.minR2) / 1.5))
	}
	res.thresh = cfg.Thresh
	if res.thresh == Unset {
		res.thresh = 100
	}

	switch {
	case cfg.Flex == FlexDefault:
		res.flex = queryLen / 2
	case cfg.Flex == FlexMax:
		res.flex = queryLen
	case cfg.Flex == FlexMin:
		res.flex = 0
	case cfg.Flex > 0:
		res.flex = int(cfg.Flex)
		if res.flex > queryLen {
			diags = append(diags, Diagnostic{
				Code:    DiagFlexClamped,
				Message: fmt.Sprintf("flex %d exceeds query length, clamped to %d", res.flex, queryLen),
			})
			res.flex = queryLen
		}
	default:
		return res, nil, fmt.Errorf("%w: unknown flex value %d", ErrConfig, cfg.Flex)
	}

	if res.flex > 0 {
		if res.minR1 > res.minR2 {
			diags = append(diags, Diagnostic{
				Code:    DiagRatioCoerced,
				Message: fmt.Sprintf("min_r1 %d > min_r2 %d, coerced min_r1 to %d", res.minR1, res.minR2, res.minR2),
			})
			res.minR1 = res.minR2
		}
		if res.thresh < res.minR2 {
			diags = append(diags, Diagnostic{
				Code:    DiagRatioCoerced,
				Message: fmt.Sprintf("thresh %d < min_r2 %d, coerced thresh to %d", res.thresh, res.minR2, res.minR2),
			})
			res.thresh = res.minR2
		}
	} else {
		// Optimization is a no-op at flex 0, so the scan threshold is
		// the acceptance threshold.
		res.minR1 = res.minR2
	}

	if cfg.Limit > 0 {
		res.limit = cfg.Limit
	}
	return res, diags, nil
}
