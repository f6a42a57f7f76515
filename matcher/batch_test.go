package matcher

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/fuzzmatch/search"
	"github.com/jonwraymond/fuzzmatch/token"
)

func TestMatchBatch(t *testing.T) {
	m := New(Options{})
	require.NoError(t, m.Add("FOOD", []*token.Sequence{token.Split("chicken")}, nil))

	docs := []*token.Sequence{
		token.Split("chiken wings tonight"),
		token.Split("nothing relevant"),
		token.Split("more chiken please"),
	}

	results, err := m.MatchBatch(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, results, len(docs))

	for i, r := range results {
		assert.Equal(t, i, r.Doc, "results must come back in document order")
	}
	assert.Equal(t, []Match{{Label: "FOOD", Start: 0, End: 1, Ratio: 92}}, results[0].Matches)
	assert.Empty(t, results[1].Matches)
	assert.Equal(t, []Match{{Label: "FOOD", Start: 1, End: 2, Ratio: 92}}, results[2].Matches)
}

func TestMatchBatch_ManyDocs(t *testing.T) {
	m := New(Options{})
	require.NoError(t, m.Add("FOOD", []*token.Sequence{token.Split("chicken")}, nil))

	docs := make([]*token.Sequence, 100)
	for i := range docs {
		docs[i] = token.Split(fmt.Sprintf("doc %d mentions chiken once", i))
	}

	results, err := m.MatchBatch(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, results, len(docs))
	for i, r := range results {
		require.Equal(t, i, r.Doc)
		require.Len(t, r.Matches, 1, "doc %d", i)
	}
}

func TestMatchBatch_Canceled(t *testing.T) {
	m := New(Options{})
	require.NoError(t, m.Add("FOOD", []*token.Sequence{token.Split("chicken")}, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.MatchBatch(ctx, []*token.Sequence{token.Split("chiken")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchBatch_Error(t *testing.T) {
	bad := search.DefaultConfig()
	bad.Comparator = "nope"
	m := New(Options{})
	require.NoError(t, m.Add("X", []*token.Sequence{token.Split("a")}, []*search.Config{&bad}))

	_, err := m.MatchBatch(context.Background(), []*token.Sequence{token.Split("a b")})
	assert.Error(t, err)
}

func TestMatchBatch_Empty(t *testing.T) {
	m := New(Options{})
	results, err := m.MatchBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
