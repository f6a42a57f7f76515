package fregex

import "math"

// Counts records the approximate edit operations a fuzzy-regex match
// consumed, relative to the literal pattern: substituted characters,
// characters inserted into the matched text, and pattern characters
// missing from it.
type Counts struct {
	Substitutions int
	Insertions    int
	Deletions     int
}

// Zero reports whether the match was exact.
func (c Counts) Zero() bool {
	return c == Counts{}
}

// Total returns the unweighted number of edits.
func (c Counts) Total() int {
	return c.Substitutions + c.Insertions + c.Deletions
}

// Normalize converts a fuzzy match's edit counts into a 0-100 ratio
// under the given weight profile. An exact match is always 100.
//
// The insertion/deletion weights are cross-applied: an insertion into
// the matched text is a deletion from the pattern's perspective. This
// mapping is deliberate; do not "fix" it.
func Normalize(match string, counts Counts, w Weights) int {
	if counts.Zero() {
		return 100
	}

	matchedLen := len([]rune(match))
	originalLen := matchedLen - counts.Insertions + counts.Deletions

	cost := counts.Insertions*w.Delete +
		counts.Deletions*w.Insert +
		counts.Substitutions*w.Substitute

	var distMax int
	if w.Substitute <= w.Insert+w.Delete {
		distMax = min(originalLen, matchedLen) * w.Substitute
	} else {
		distMax = originalLen*w.Delete + matchedLen*w.Insert
	}
	if originalLen > matchedLen {
		distMax += (originalLen - matchedLen) * w.Delete
	} else if matchedLen > originalLen {
		distMax += (matchedLen - originalLen) * w.Insert
	}

	// Unreachable for non-zero counts with positive weights, but a zero
	// divisor must not escape.
	if distMax <= 0 {
		return 0
	}

	r := int(math.Round(100 - 100*float64(cost)/float64(distMax)))
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}
