package fregex

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Error values for pattern compilation.
var (
	ErrParse = errors.New("invalid pattern")
)

// Budget bounds the edit operations a fuzzy pattern may consume.
// A value of -1 means the term was not specified.
type Budget struct {
	Total      int
	Insert     int
	Delete     int
	Substitute int
}

const unbounded = 1 << 20

// caps resolves the budget into per-operation and total ceilings.
// An operation with no term of its own and no total term is forbidden.
func (b Budget) caps() (ins, del, sub, total int) {
	resolve := func(own int) int {
		if own >= 0 {
			return own
		}
		if b.Total >= 0 {
			return b.Total
		}
		return 0
	}
	ins = resolve(b.Insert)
	del = resolve(b.Delete)
	sub = resolve(b.Substitute)
	if b.Total >= 0 {
		total = b.Total
	} else {
		total = ins + del + sub
	}
	return ins, del, sub, total
}

// Pattern is a compiled exact or fuzzy pattern.
type Pattern struct {
	expr   string
	exact  *regexp.Regexp // non-nil for ordinary patterns
	alts   [][]rune       // literal alternatives for fuzzy patterns
	budget Budget
}

// Match is one occurrence of a pattern in a text, with byte offsets and
// the edit counts the occurrence consumed.
type Match struct {
	Start  int
	End    int
	Text   string
	Counts Counts
}

var fuzzyForm = regexp.MustCompile(`^\((?:\?:)?(.*)\)\{([esid]<=\d+(?:,[esid]<=\d+)*)\}$`)

// Compile parses expr into a Pattern. Expressions in fuzzy form (see the
// package documentation) become approximate literal matchers; everything
// else compiles with the standard regexp package and reports zero edit
// counts.
func Compile(expr string) (*Pattern, error) {
	if m := fuzzyForm.FindStringSubmatch(expr); m != nil {
		budget, err := parseBudget(m[2])
		if err != nil {
			return nil, err
		}
		alts, err := parseAlternatives(m[1])
		if err != nil {
			return nil, err
		}
		return &Pattern{expr: expr, alts: alts, budget: budget}, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &Pattern{expr: expr, exact: re, budget: Budget{Total: -1, Insert: -1, Delete: -1, Substitute: -1}}, nil
}

// MustCompile is Compile that panics on error, for use with known-good
// patterns.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source expression.
func (p *Pattern) String() string { return p.expr }

// IsFuzzy reports whether the pattern tolerates edits.
func (p *Pattern) IsFuzzy() bool { return p.exact == nil }

func parseBudget(spec string) (Budget, error) {
	b := Budget{Total: -1, Insert: -1, Delete: -1, Substitute: -1}
	for _, term := range strings.Split(spec, ",") {
		kind, val, ok := strings.Cut(term, "<=")
		if !ok {
			return b, fmt.Errorf("%w: budget term %q", ErrParse, term)
		}
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return b, fmt.Errorf("%w: budget term %q", ErrParse, term)
		}
		switch kind {
		case "e":
			b.Total = n
		case "i":
			b.Insert = n
		case "d":
			b.Delete = n
		case "s":
			b.Substitute = n
		default:
			return b, fmt.Errorf("%w: budget term %q", ErrParse, term)
		}
	}
	return b, nil
}

func parseAlternatives(body string) ([][]rune, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: empty fuzzy body", ErrParse)
	}
	var alts [][]rune
	for _, alt := range strings.Split(body, "|") {
		if alt == "" {
			return nil, fmt.Errorf("%w: empty alternative in %q", ErrParse, body)
		}
		if strings.ContainsAny(alt, `()[]{}*+?.^$\`) {
			return nil, fmt.Errorf("%w: fuzzy body %q must be literal", ErrParse, body)
		}
		alts = append(alts, []rune(alt))
	}
	return alts, nil
}

// MatchText matches text against the pattern. Ordinary patterns match at
// the start of text (like a prefix-anchored regex) and report zero
// counts; fuzzy patterns match the whole text against each alternative
// within the edit budget and report the cheapest alignment's counts.
func (p *Pattern) MatchText(text string) (Counts, bool) {
	if p.exact != nil {
		loc := p.exact.FindStringIndex(text)
		if loc == nil || loc[0] != 0 {
			return Counts{}, false
		}
		return Counts{}, true
	}

	runes := []rune(text)
	best := Counts{}
	bestTotal := unbounded
	for _, alt := range p.alts {
		if c, ok := p.align(alt, runes); ok && c.Total() < bestTotal {
			best = c
			bestTotal = c.Total()
		}
	}
	return best, bestTotal < unbounded
}

// align computes the minimal-edit alignment of pattern onto text and
// checks it against the budget.
func (p *Pattern) align(pat, text []rune) (Counts, bool) {
	m, n := len(pat), len(text)
	dp := editTable(pat, text, true)
	insCap, delCap, subCap, totalCap := p.budget.caps()
	if dp[m][n] > totalCap {
		return Counts{}, false
	}
	c := backtrack(dp, pat, text, n)
	if c.Insertions > insCap || c.Deletions > delCap || c.Substitutions > subCap {
		return Counts{}, false
	}
	return c, true
}

// FindAll returns non-overlapping occurrences of the pattern in text,
// ordered by start offset. For fuzzy patterns, occurrences within the
// edit budget are selected greedily by ascending edit cost.
func (p *Pattern) FindAll(text string) []Match {
	if p.exact != nil {
		locs := p.exact.FindAllStringIndex(text, -1)
		matches := make([]Match, 0, len(locs))
		for _, loc := range locs {
			matches = append(matches, Match{Start: loc[0], End: loc[1], Text: text[loc[0]:loc[1]]})
		}
		return matches
	}
	return p.findApprox(text)
}

func (p *Pattern) findApprox(text string) []Match {
	runes := []rune(text)
	// Byte offset of each rune, plus the terminating length.
	offs := make([]int, len(runes)+1)
	for i, pos := 0, 0; i < len(runes); i++ {
		offs[i] = pos
		pos += len(string(runes[i]))
	}
	offs[len(runes)] = len(text)

	insCap, delCap, subCap, totalCap := p.budget.caps()

	var candidates []Match
	for _, alt := range p.alts {
		m := len(alt)
		dp := editTable(alt, runes, false)
		for j := 1; j <= len(runes); j++ {
			cost := dp[m][j]
			if cost > totalCap {
				continue
			}
			start, c := backtrackStart(dp, alt, runes, j)
			if c.Insertions > insCap || c.Deletions > delCap || c.Substitutions > subCap {
				continue
			}
			if start == j {
				continue
			}
			candidates = append(candidates, Match{
				Start:  offs[start],
				End:    offs[j],
				Text:   string(runes[start:j]),
				Counts: c,
			})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Cheapest alignments win overlaps; ties go to the leftmost, then
	// longest, occurrence.
	sort.Slice(candidates, func(i, k int) bool {
		ci, ck := candidates[i].Counts.Total(), candidates[k].Counts.Total()
		if ci != ck {
			return ci < ck
		}
		if candidates[i].Start != candidates[k].Start {
			return candidates[i].Start < candidates[k].Start
		}
		return candidates[i].End > candidates[k].End
	})
	var selected []Match
	for _, cand := range candidates {
		overlaps := false
		for _, s := range selected {
			if cand.Start < s.End && s.Start < cand.End {
				overlaps = true
				break
			}
		}
		if !overlaps {
			selected = append(selected, cand)
		}
	}
	sort.Slice(selected, func(i, k int) bool { return selected[i].Start < selected[k].Start })
	return selected
}

// editTable fills the Wagner-Fischer table converting pat into text.
// When anchored, alignments must consume text from its start; otherwise
// row zero is free and alignments may begin anywhere.
func editTable(pat, text []rune, anchored bool) [][]int {
	m, n := len(pat), len(text)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for j := 0; j <= n; j++ {
		if anchored {
			dp[0][j] = j
		}
	}
	for i := 1; i <= m; i++ {
		dp[i][0] = i
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			best := dp[i-1][j-1]
			if pat[i-1] != text[j-1] {
				best++ // substitution
			}
			if d := dp[i-1][j] + 1; d < best { // delete from pattern
				best = d
			}
			if d := dp[i][j-1] + 1; d < best { // insert into text
				best = d
			}
			dp[i][j] = best
		}
	}
	return dp
}

// backtrack recovers op counts for the full-text alignment ending at
// column end. Ties resolve match/substitute, then delete, then insert,
// keeping results deterministic.
func backtrack(dp [][]int, pat, text []rune, end int) Counts {
	_, c := walk(dp, pat, text, end, true)
	return c
}

// backtrackStart is backtrack for unanchored tables; it also reports the
// text column where the alignment begins.
func backtrackStart(dp [][]int, pat, text []rune, end int) (int, Counts) {
	return walk(dp, pat, text, end, false)
}

func walk(dp [][]int, pat, text []rune, end int, anchored bool) (int, Counts) {
	var c Counts
	i, j := len(pat), end
	for i > 0 {
		switch {
		case j > 0 && pat[i-1] == text[j-1] && dp[i][j] == dp[i-1][j-1]:
			i--
			j--
		case j > 0 && dp[i][j] == dp[i-1][j-1]+1:
			c.Substitutions++
			i--
			j--
		case dp[i][j] == dp[i-1][j]+1:
			c.Deletions++
			i--
		default:
			c.Insertions++
			j--
		}
	}
	if anchored {
		for j > 0 {
			c.Insertions++
			j--
		}
	}
	return j, c
}
