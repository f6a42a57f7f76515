package matcher

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/fuzzmatch/search"
	"github.com/jonwraymond/fuzzmatch/token"
)

// BatchResult pairs one document's index with its matches and
// diagnostics.
type BatchResult struct {
	Doc     int
	Matches []Match
	Diags   []search.Diagnostic
}

// MatchBatch runs the matcher over every document concurrently, bounded
// by GOMAXPROCS workers. Results come back indexed by document, in
// document order. The first error cancels the remaining work.
func (m *Matcher) MatchBatch(ctx context.Context, docs []*token.Sequence) ([]BatchResult, error) {
	results := make([]BatchResult, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			matches, diags, err := m.Match(doc)
			if err != nil {
				return err
			}
			results[i] = BatchResult{Doc: i, Matches: matches, Diags: diags}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
