package search

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jonwraymond/fuzzmatch/token"
)

func TestParseConstraintKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ConstraintKind
		wantErr bool
	}{
		{in: "any", want: KindAny},
		{in: "", want: KindAny},
		{in: "exact", want: KindExact},
		{in: "fuzzy", want: KindFuzzy},
		{in: "fregex", want: KindFuzzyRegex},
		{in: "regex", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConstraintKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrConfig) {
					t.Fatalf("ParseConstraintKind(%q) error = %v, want ErrConfig", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseConstraintKind(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseConstraintKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if back, _ := ParseConstraintKind(got.String()); back != got {
				t.Errorf("String round trip of %v = %v", got, back)
			}
		})
	}
}

func TestTokenSearcher_Match(t *testing.T) {
	searcher := NewTokenSearcher()

	doc := token.Split("I took Zithramax and advar today")
	constraints := []Constraint{
		FuzzyText("zithromax"),
		Any(),
		FuzzyRegex(`(advair){e<=1}`),
	}

	records, err := searcher.Match(doc, constraints, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	want := []Record{{
		{Kind: KindFuzzy, Text: "Zithramax", Ratio: 89},
		{Kind: KindAny, Text: "and", Ratio: 100},
		{Kind: KindFuzzyRegex, Text: "advar", Ratio: 91},
	}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("Match() = %+v, want %+v", records, want)
	}
}

func TestTokenSearcher_ExactAlwaysPasses(t *testing.T) {
	searcher := NewTokenSearcher()
	doc := token.Split("alpha beta")

	// Exact positions are match candidates for the caller to re-check,
	// so every window passes and reports the token at ratio 100.
	records, err := searcher.Match(doc, []Constraint{ExactText("gamma")}, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, rec := range records {
		if rec[0].Kind != KindExact || rec[0].Ratio != 100 {
			t.Errorf("record = %+v", rec)
		}
	}
}

func TestTokenSearcher_ShortCircuit(t *testing.T) {
	searcher := NewTokenSearcher()
	doc := token.Split("nothing matches anywhere at all")

	records, err := searcher.Match(doc, []Constraint{
		FuzzyText("zithromax"),
		FuzzyText("tablets"),
	}, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if records != nil {
		t.Errorf("Match() = %+v, want nil", records)
	}
}

func TestTokenSearcher_AdjacentDuplicatesCollapse(t *testing.T) {
	searcher := NewTokenSearcher()
	doc := token.Split("cow cow cow moo cow")

	records, err := searcher.Match(doc, []Constraint{FuzzyText("cow")}, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	// Three adjacent identical windows collapse to one; the window after
	// "moo" evaluates identically but is not adjacent to it.
	if len(records) != 2 {
		t.Errorf("got %d records, want 2: %+v", len(records), records)
	}
}

func TestTokenSearcher_CaseSensitiveConstraint(t *testing.T) {
	searcher := NewTokenSearcher()
	doc := token.Split("ZITHROMAX")

	folded, err := searcher.Match(doc, []Constraint{FuzzyText("zithromax")}, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(folded) != 1 || folded[0][0].Ratio != 100 {
		t.Errorf("folded records = %+v, want one perfect match", folded)
	}

	strict, err := searcher.Match(doc, []Constraint{
		{Kind: KindFuzzy, Text: "zithromax", CaseSensitive: true},
	}, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if strict != nil {
		t.Errorf("case-sensitive records = %+v, want nil", strict)
	}
}

func TestTokenSearcher_PerConstraintOverrides(t *testing.T) {
	searcher := NewTokenSearcher()
	doc := token.Split("chiken")

	// SimpleRatio scores 92; a per-constraint min_r above it rejects.
	records, err := searcher.Match(doc, []Constraint{
		{Kind: KindFuzzy, Text: "chicken", MinR: 95},
	}, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if records != nil {
		t.Errorf("records = %+v, want nil at min_r 95", records)
	}

	records, err = searcher.Match(doc, []Constraint{
		{Kind: KindFuzzy, Text: "chicken", MinR: 90},
	}, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(records) != 1 || records[0][0].Ratio != 92 {
		t.Errorf("records = %+v, want one match at 92", records)
	}
}

func TestTokenSearcher_ConfigErrors(t *testing.T) {
	searcher := NewTokenSearcher()
	doc := token.Split("a b")

	if _, err := searcher.Match(doc, nil, nil); !errors.Is(err, ErrConfig) {
		t.Errorf("empty pattern error = %v, want ErrConfig", err)
	}
	if _, err := searcher.Match(doc, []Constraint{{Kind: KindFuzzy, Text: "x", Comparator: "nope"}}, nil); !errors.Is(err, ErrConfig) {
		t.Errorf("unknown comparator error = %v, want ErrConfig", err)
	}
	if _, err := searcher.Match(doc, []Constraint{FuzzyRegex(`(`)}, nil); err == nil {
		t.Error("bad fregex pattern did not error")
	}
	if _, err := searcher.Match(doc, []Constraint{{Kind: KindFuzzyRegex, Text: `(a){e<=1}`, WeightProfile: "nope"}}, nil); !errors.Is(err, ErrConfig) {
		t.Errorf("unknown weight profile error = %v, want ErrConfig", err)
	}
}

func TestTokenSearcher_DefaultOverrides(t *testing.T) {
	searcher := NewTokenSearcher()
	doc := token.Split("chiken")

	// Searcher-level min_r applies where the constraint has none.
	records, err := searcher.Match(doc, []Constraint{FuzzyText("chicken")}, &TokenConfig{MinR: 95})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if records != nil {
		t.Errorf("records = %+v, want nil under searcher min_r 95", records)
	}
}
