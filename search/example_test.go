package search_test

import (
	"fmt"

	"github.com/jonwraymond/fuzzmatch/search"
	"github.com/jonwraymond/fuzzmatch/token"
)

func ExamplePhraseSearcher_Match() {
	searcher := search.NewPhraseSearcher()

	doc := token.Split("chiken from Popeyes is better than chken")
	query := token.Split("chicken")
	cfg := search.Config{
		CaseSensitive: true,
		MinR:          75,
		MinR1:         search.Unset,
		MinR2:         search.Unset,
		Thresh:        100,
	}

	matches, _, _ := searcher.Match(doc, query, &cfg)
	for _, m := range matches {
		fmt.Printf("%s [%d:%d) ratio=%d\n", doc.Slice(m.Start, m.End).Text(), m.Start, m.End, m.Ratio)
	}
	// Output:
	// chiken [0:1) ratio=92
	// chken [6:7) ratio=83
}

func ExamplePhraseSearcher_Best() {
	searcher := search.NewPhraseSearcher()

	doc := token.Split("grant de andersen")
	query := token.Split("grant andersen")

	m, ok, _ := searcher.Best(doc, query, nil)
	if ok {
		fmt.Printf("%q ratio=%d\n", doc.Slice(m.Start, m.End).Text(), m.Ratio)
	}
	// Output:
	// "grant de andersen" ratio=90
}

func ExampleRegexSearcher_Match() {
	searcher := search.NewRegexSearcher()

	doc := token.Split("reach me at test@example.com thanks")
	matches, _ := searcher.Match(doc, "emails", search.RegexOptions{Predef: true})
	for _, m := range matches {
		fmt.Println(doc.Slice(m.Start, m.End).Text())
	}
	// Output:
	// test@example.com
}

func ExampleTokenSearcher_Match() {
	searcher := search.NewTokenSearcher()

	doc := token.Split("I took Zithramax and advar today")
	records, _ := searcher.Match(doc, []search.Constraint{
		search.FuzzyText("zithromax"),
		search.Any(),
		search.FuzzyRegex(`(advair){e<=1}`),
	}, nil)

	for _, rec := range records {
		for _, tm := range rec {
			fmt.Printf("%s=%d ", tm.Text, tm.Ratio)
		}
		fmt.Println()
	}
	// Output:
	// Zithramax=89 and=100 advar=91
}
