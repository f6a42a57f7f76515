package search

import (
	"reflect"
	"testing"

	"github.com/jonwraymond/fuzzmatch/token"
)

func TestPhraseSearcher_Match(t *testing.T) {
	searcher := NewPhraseSearcher()

	tests := []struct {
		name  string
		doc   string
		query string
		cfg   *Config
		want  []Match
	}{
		{
			name:  "ranked typo matches",
			doc:   "chiken from Popeyes is better than chken from Chick-fil-A",
			query: "chicken",
			cfg:   &Config{CaseSensitive: true, MinR: 75, MinR1: Unset, MinR2: Unset, Thresh: 100},
			want:  []Match{{Start: 0, End: 1, Ratio: 92}, {Start: 6, End: 7, Ratio: 83}},
		},
		{
			name:  "exact phrase",
			doc:   "the quick brown fox",
			query: "quick brown",
			cfg:   nil,
			want:  []Match{{Start: 1, End: 3, Ratio: 100}},
		},
		{
			name:  "case folded by default",
			doc:   "GRANT ANDERSEN lives here",
			query: "grant andersen",
			cfg:   nil,
			want:  []Match{{Start: 0, End: 2, Ratio: 100}},
		},
		{
			name:  "below threshold",
			doc:   "nothing remotely similar here",
			query: "zithromax",
			cfg:   nil,
			want:  nil,
		},
		{
			name:  "document shorter than query",
			doc:   "tiny",
			query: "a much longer query phrase",
			cfg:   nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := searcher.Match(token.Split(tt.doc), token.Split(tt.query), tt.cfg)
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Match() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPhraseSearcher_EmptyQuery(t *testing.T) {
	searcher := NewPhraseSearcher()
	got, _, err := searcher.Match(token.Split("any document at all"), token.Split(""), nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if got != nil {
		t.Errorf("Match() = %+v, want nil for empty query", got)
	}
}

func TestPhraseSearcher_LimitKeepsLeftmost(t *testing.T) {
	searcher := NewPhraseSearcher()
	cfg := Config{MinR1: 0, MinR2: 0, Thresh: 100, Limit: 2}

	got, _, err := searcher.Match(token.Split("cow cow cow cow"), token.Split("cow"), &cfg)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	want := []Match{{Start: 0, End: 1, Ratio: 100}, {Start: 1, End: 2, Ratio: 100}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match() = %+v, want the two leftmost occurrences %+v", got, want)
	}
}

func TestPhraseSearcher_BoundaryOptimization(t *testing.T) {
	searcher := NewPhraseSearcher()

	// The best span is wider than the query: an interloping token splits
	// the phrase, so flexing must grow the window to recover it.
	doc := token.Split("grant de andersen")
	query := token.Split("grant andersen")

	got, _, err := searcher.Match(doc, query, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	want := []Match{{Start: 0, End: 3, Ratio: 90}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match() = %+v, want %+v", got, want)
	}
}

func TestPhraseSearcher_FlexMinSkipsOptimization(t *testing.T) {
	searcher := NewPhraseSearcher()
	doc := token.Split("grant de andersen")
	query := token.Split("grant andersen")

	cfg := DefaultConfig()
	cfg.Flex = FlexMin
	got, _, err := searcher.Match(doc, query, &cfg)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	// Without flexing, no raw window reaches 75.
	if got != nil {
		t.Errorf("Match() = %+v, want nil at flex min", got)
	}
}

func TestPhraseSearcher_ResultsDisjoint(t *testing.T) {
	searcher := NewPhraseSearcher()
	cfg := Config{MinR: 50, MinR1: Unset, MinR2: Unset, Thresh: 100}

	doc := token.Split("chiken chiken chiken dinner tonight")
	got, _, err := searcher.Match(doc, token.Split("chicken dinner"), &cfg)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	covered := make(map[int]bool)
	for _, m := range got {
		if m.Start >= m.End {
			t.Errorf("degenerate span %+v", m)
		}
		for i := m.Start; i < m.End; i++ {
			if covered[i] {
				t.Fatalf("matches overlap at token %d: %+v", i, got)
			}
			covered[i] = true
		}
	}
}

func TestPhraseSearcher_RankedByRatioThenStart(t *testing.T) {
	searcher := NewPhraseSearcher()
	got, _, err := searcher.Match(
		token.Split("chiken from Popeyes is better than chken"),
		token.Split("chicken"),
		&Config{CaseSensitive: true, MinR: 75, MinR1: Unset, MinR2: Unset, Thresh: 100},
	)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if cur.Ratio > prev.Ratio || (cur.Ratio == prev.Ratio && cur.Start < prev.Start) {
			t.Fatalf("results out of order: %+v", got)
		}
	}
}

func TestPhraseSearcher_Deterministic(t *testing.T) {
	searcher := NewPhraseSearcher()
	doc := token.Split("grant de andersen met grant anderson in nashville")
	query := token.Split("grant andersen")

	first, _, err := searcher.Match(doc, query, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	for n := 0; n < 10; n++ {
		again, _, err := searcher.Match(doc, query, nil)
		if err != nil {
			t.Fatalf("Match() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("results changed between runs: %+v vs %+v", first, again)
		}
	}
}

func TestPhraseSearcher_Best(t *testing.T) {
	searcher := NewPhraseSearcher()

	m, ok, err := searcher.Best(
		token.Split("chiken from Popeyes is better than chken"),
		token.Split("chicken"),
		&Config{CaseSensitive: true, MinR: 75, MinR1: Unset, MinR2: Unset, Thresh: 100},
	)
	if err != nil {
		t.Fatalf("Best() error = %v", err)
	}
	if !ok {
		t.Fatal("Best() found nothing")
	}
	if want := (Match{Start: 0, End: 1, Ratio: 92}); m != want {
		t.Errorf("Best() = %+v, want %+v", m, want)
	}

	_, ok, err = searcher.Best(token.Split("nothing here"), token.Split("zithromax"), nil)
	if err != nil {
		t.Fatalf("Best() error = %v", err)
	}
	if ok {
		t.Error("Best() reported a match below threshold")
	}
}

func TestPhraseSearcher_ConfigError(t *testing.T) {
	searcher := NewPhraseSearcher()
	cfg := DefaultConfig()
	cfg.Comparator = "nope"
	if _, _, err := searcher.Match(token.Split("a b"), token.Split("a"), &cfg); err == nil {
		t.Error("Match() with unknown comparator did not error")
	}
}
