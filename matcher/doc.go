// Package matcher layers named, labeled pattern sets on top of the
// search package, in the style of a rule-based entity matcher.
//
// Three matchers cover the three search modes:
//
//   - [Matcher] holds phrase patterns matched with the fuzzy phrase
//     searcher.
//   - [RegexMatcher] holds regex and fuzzy-regex patterns.
//   - [TokenMatcher] holds per-token constraint patterns.
//
// Each maps a label to one or more patterns, optionally with a
// per-pattern configuration overriding the matcher defaults, and
// reports every match of every pattern in position order:
//
//	m := matcher.New(matcher.Options{})
//	_ = m.Add("NAME", []*token.Sequence{token.Split("Grant Andersen")}, nil)
//	matches, diags, err := m.Match(token.Split("G-rant Anderson lives in TN."))
//
// Matches keep their labels; resolving overlap between labels is the
// caller's concern. Pattern sets round-trip through JSON with
// MarshalPatterns and UnmarshalPatterns, and MatchBatch fans a matcher
// out over many documents concurrently.
//
// # Thread Safety
//
// Adding and removing patterns takes a write lock; matching takes a
// read lock. A matcher may serve concurrent Match calls freely.
package matcher
