// Package search implements the fuzzmatch algorithmic core: windowed
// phrase search with boundary optimization, character-level regex and
// fuzzy-regex search mapped back to token spans, and per-token
// constraint patterns.
//
// # Phrase search
//
// [PhraseSearcher.Match] slides a query-width window across the
// document, scores each position with the configured comparator, flexes
// the boundaries of promising candidates, and returns a ranked,
// non-overlapping result set:
//
//	searcher := search.NewPhraseSearcher()
//	matches, diags, err := searcher.Match(doc, query, nil)
//
// A nil config means [DefaultConfig]. Non-fatal configuration
// adjustments (a clamped flex, a coerced ratio) come back as
// [Diagnostic] values rather than being logged.
//
// # Regex search
//
// [RegexSearcher.Match] runs an exact or fuzzy regex over the
// document's text and snaps matches to token boundaries. Fuzzy matches
// carry ratios normalized from their edit counts.
//
// # Token patterns
//
// [TokenSearcher.Match] evaluates a fixed-length sequence of per-token
// constraints (exact, fuzzy, fuzzy-regex, unconstrained) against every
// document window, short-circuiting on the first failing position.
//
// # Concurrency
//
// Everything here is synchronous and CPU-bound. Searchers hold no
// per-call state, so one instance may serve any number of goroutines
// matching distinct documents.
package search
