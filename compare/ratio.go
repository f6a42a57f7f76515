package compare

import (
	"math"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/xrash/smetrics"
)

// SimpleRatio is the default edit-distance ratio: the normalized
// insert/delete (indel) similarity of the two strings, identical in
// spirit to the classic "ratio" of the fuzzywuzzy family. Identity
// yields 100, disjoint strings 0.
func SimpleRatio(a, b string) int {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la+lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}
	lcs := edlib.LCS(a, b)
	return round(200 * float64(lcs) / float64(la+lb))
}

// PartialRatio scores the best SimpleRatio of the shorter string against
// every equal-length rune window of the longer string.
func PartialRatio(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 100
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == len(long) {
		return SimpleRatio(string(short), string(long))
	}
	best := 0
	s := string(short)
	for i := 0; i+len(short) <= len(long); i++ {
		r := SimpleRatio(s, string(long[i:i+len(short)]))
		if r > best {
			best = r
		}
		if best == 100 {
			break
		}
	}
	return best
}

// TokenSortRatio splits both strings on whitespace, sorts the tokens,
// and scores the rejoined forms with SimpleRatio. Word order becomes
// irrelevant.
func TokenSortRatio(a, b string) int {
	return SimpleRatio(sortTokens(a), sortTokens(b))
}

// TokenSetRatio compares the sorted token intersection of both strings
// against each side's sorted remainder and returns the best score.
// Repetition and word order become irrelevant.
func TokenSetRatio(a, b string) int {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 100
	}

	var inter, diffA, diffB []string
	for t := range ta {
		if tb[t] {
			inter = append(inter, t)
		} else {
			diffA = append(diffA, t)
		}
	}
	for t := range tb {
		if !ta[t] {
			diffB = append(diffB, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(diffA)
	sort.Strings(diffB)

	sect := strings.Join(inter, " ")
	combA := strings.TrimSpace(sect + " " + strings.Join(diffA, " "))
	combB := strings.TrimSpace(sect + " " + strings.Join(diffB, " "))

	best := SimpleRatio(combA, combB)
	if sect != "" {
		if r := SimpleRatio(sect, combA); r > best {
			best = r
		}
		if r := SimpleRatio(sect, combB); r > best {
			best = r
		}
	}
	return best
}

// WeightedRatio blends the simple, token and partial ratios depending on
// how different the string lengths are, following the weighted-ratio
// heuristic of the fuzzywuzzy family.
func WeightedRatio(a, b string) int {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la+lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}

	const unbaseScale = 0.95
	best := float64(SimpleRatio(a, b))

	lenRatio := float64(max(la, lb)) / float64(min(la, lb))
	if lenRatio < 1.5 {
		best = math.Max(best, float64(TokenSortRatio(a, b))*unbaseScale)
		best = math.Max(best, float64(TokenSetRatio(a, b))*unbaseScale)
		return round(best)
	}

	partialScale := 0.9
	if lenRatio >= 8 {
		partialScale = 0.6
	}
	best = math.Max(best, float64(PartialRatio(a, b))*partialScale)
	best = math.Max(best, float64(PartialRatio(sortTokens(a), sortTokens(b)))*unbaseScale*partialScale)
	return round(best)
}

// QuickLevRatio is a cheaper alternative to SimpleRatio: Levenshtein
// distance normalized by the longer string's length.
func QuickLevRatio(a, b string) int {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return round(float64(sim) * 100)
}

// JaroWinklerRatio scores Jaro-Winkler similarity, which favors strings
// sharing a common prefix.
func JaroWinklerRatio(a, b string) int {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return round(smetrics.JaroWinkler(a, b, 0.7, 4) * 100)
}

func sortTokens(s string) string {
	fields := strings.Fields(s)
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

func tokenSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, f := range strings.Fields(s) {
		set[f] = true
	}
	return set
}

func round(f float64) int {
	return int(math.Round(f))
}
