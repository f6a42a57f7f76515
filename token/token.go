package token

import (
	"fmt"
	"strings"
	"unicode"
)

// Token is a minimal unit of text with content and position.
// Tokens are produced externally and never mutated by fuzzmatch.
type Token struct {
	// Text is the token's surface form.
	Text string

	// CharOffset is the byte offset of the token within the original text.
	CharOffset int

	// Index is the token's position in the original token stream.
	Index int

	// Vector is an optional word vector used by the similarity
	// comparator. May be nil.
	Vector []float32
}

// Sequence is an ordered, zero-indexed view over a run of tokens.
// Slicing is O(1): sub-sequences share the backing token slice and the
// original text.
type Sequence struct {
	raw  string
	toks []Token
}

// New builds a sequence from the original text and its tokens.
// Token offsets must refer to byte positions within raw.
func New(raw string, toks []Token) *Sequence {
	return &Sequence{raw: raw, toks: toks}
}

// Split tokenizes text on Unicode whitespace, preserving byte offsets.
// It is a convenience for tests and examples; real callers should wrap
// their own tokenizer output with New.
func Split(text string) *Sequence {
	var toks []Token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				toks = append(toks, Token{
					Text:       text[start:i],
					CharOffset: start,
					Index:      len(toks),
				})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, Token{
			Text:       text[start:],
			CharOffset: start,
			Index:      len(toks),
		})
	}
	return &Sequence{raw: text, toks: toks}
}

// Len returns the number of tokens in the sequence.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.toks)
}

// Token returns the i-th token of this view.
func (s *Sequence) Token(i int) Token {
	return s.toks[i]
}

// Slice returns the half-open sub-sequence [start, end).
// It panics if the bounds violate 0 <= start <= end <= Len, mirroring
// Go slice semantics.
func (s *Sequence) Slice(start, end int) *Sequence {
	if start < 0 || end < start || end > len(s.toks) {
		panic(fmt.Sprintf("token: slice bounds out of range [%d:%d] with length %d", start, end, len(s.toks)))
	}
	return &Sequence{raw: s.raw, toks: s.toks[start:end]}
}

// Text reconstructs the covering text of the sequence, including any
// interior whitespace between tokens. An empty sequence yields "".
func (s *Sequence) Text() string {
	if s.Len() == 0 {
		return ""
	}
	first := s.toks[0]
	last := s.toks[len(s.toks)-1]
	lo := first.CharOffset
	hi := last.CharOffset + len(last.Text)
	if lo >= 0 && hi <= len(s.raw) && lo <= hi {
		return s.raw[lo:hi]
	}
	// Sequences built without offsets fall back to joining on spaces.
	parts := make([]string, len(s.toks))
	for i, t := range s.toks {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// Vector returns the mean of the token vectors in the sequence, or nil
// when no token carries a usable vector. Tokens whose vectors disagree
// in dimension with the first usable vector are skipped.
func (s *Sequence) Vector() []float32 {
	var sum []float32
	n := 0
	for _, t := range s.toks {
		if len(t.Vector) == 0 {
			continue
		}
		if sum == nil {
			sum = make([]float32, len(t.Vector))
		}
		if len(t.Vector) != len(sum) {
			continue
		}
		for i, v := range t.Vector {
			sum[i] += v
		}
		n++
	}
	if n == 0 {
		return nil
	}
	inv := 1 / float32(n)
	for i := range sum {
		sum[i] *= inv
	}
	return sum
}
