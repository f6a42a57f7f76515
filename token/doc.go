// Package token defines the tokenized-text data model shared by all
// fuzzmatch searchers and matchers.
//
// Tokens are produced externally (by whatever tokenizer the caller uses)
// and are immutable once handed to this package. A [Sequence] is an
// ordered, zero-indexed view over tokens that supports cheap half-open
// slicing and can reconstruct the covering text of any slice, interior
// whitespace included.
//
// # Usage
//
//	doc := token.Split("chiken from Popeyes")
//	span := doc.Slice(0, 2)
//	fmt.Println(span.Text()) // "chiken from"
//
// [Split] is a whitespace tokenizer provided as a convenience for tests
// and examples. Production callers are expected to build sequences from
// their own tokenizer output with [New].
//
// # Thread Safety
//
// Sequences are read-only after construction and safe to share between
// goroutines.
package token
