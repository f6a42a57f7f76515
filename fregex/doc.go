// Package fregex provides fuzzy-regex support: compiling patterns that
// tolerate a bounded number of edits, reporting the edit operations a
// match consumed, and normalizing those edit counts onto the same 0-100
// ratio scale the rest of fuzzmatch uses.
//
// # Pattern syntax
//
// Ordinary patterns compile with the standard library regexp package and
// always report zero edit counts. A fuzzy pattern is a parenthesized
// literal body followed by an edit budget:
//
//	(database){e<=1}    // any single edit
//	(sql){i<=3}         // up to three inserted characters
//	(color|colour){e<=2}
//
// Budget terms are e (total edits), i (insertions), d (deletions) and
// s (substitutions), comma-separated. The body may use top-level
// alternation but no other regex syntax; budgets are enforced on the
// minimal-edit alignment.
//
// # Ratio normalization
//
// [Normalize] converts a match's edit counts into a 0-100 ratio under a
// named weight profile. Profiles live in a string-keyed registry open to
// caller extension; "indel" (1,1,2) and "lev" (1,1,1) are built in.
//
// # Thread Safety
//
// Compiled patterns, the weight registry and the pattern cache are safe
// for concurrent use.
package fregex
