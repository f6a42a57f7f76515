// Package compare provides the pluggable token-range comparators used by
// the search package.
//
// A [Comparator] scores two token sequences on a 0-100 scale, where 100
// is an exact match. Comparators are pure and deterministic, and their
// output is always clamped to [0, 100].
//
// # Registry
//
// Comparators are resolved by name through a string-keyed registry that
// is open to caller extension:
//
//	compare.Register("mine", myComparator)
//	cmp, err := compare.Get("mine")
//
// The built-in edit-ratio family (simple, partial, token_set, token_sort,
// weighted, quick_lev, jaro_winkler) scores the concatenated text of each
// range, case-folded when Options.IgnoreCase is set. The "similarity"
// comparator scores cosine similarity over aggregated token vectors and
// yields 0, never an error, when either side lacks a usable vector.
//
// # Thread Safety
//
// The registry and all built-in comparators are safe for concurrent use.
package compare
