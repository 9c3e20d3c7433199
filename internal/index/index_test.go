package index

import (
	"context"
	"testing"

	"github.com/basupportii/ai-router/pkg/provider"
	"github.com/basupportii/ai-router/pkg/provider/types"
	"github.com/stretchr/testify/require"
)

func TestKeyword_SearchRanksByOverlap(t *testing.T) {
	k := NewKeyword()
	k.Add("a.go", "the router classifies intent and selects a model")
	k.Add("b.go", "the cache stores responses keyed by intent and prompt")
	k.Add("c.go", "cooking pasta requires boiling water")

	results := k.Search("intent model classify", 2)
	require.Len(t, results, 2)
	require.Equal(t, "a.go", results[0].Path)
}

func TestChunk_RespectsMaxChunksAndOverlap(t *testing.T) {
	text := make([]byte, chunkSize*3)
	for i := range text {
		text[i] = 'a'
	}
	chunks := Chunk(string(text))
	require.Greater(t, len(chunks), 1)
	require.LessOrEqual(t, len(chunks), maxChunksPerFile)
}

func TestEmbedded_SearchRanksByCosine(t *testing.T) {
	e := NewEmbedded()
	e.AddChunk("a.go", 0, "alpha", []float64{1, 0, 0})
	e.AddChunk("b.go", 0, "beta", []float64{0, 1, 0})

	results := e.Search([]float64{1, 0, 0}, 1)
	require.Len(t, results, 1)
	require.Equal(t, "a.go", results[0].Path)
}

type fakeReranker struct{}

func (fakeReranker) SpecificationVersion() string { return "v1" }
func (fakeReranker) Provider() string             { return "fake" }
func (fakeReranker) ModelID() string              { return "fake-rerank" }
func (fakeReranker) DoRerank(ctx context.Context, opts *provider.RerankOptions) (*types.RerankResult, error) {
	return &types.RerankResult{
		Ranking: []types.RerankItem{
			{Index: 1, RelevanceScore: 0.9},
			{Index: 0, RelevanceScore: 0.2},
		},
	}, nil
}

func TestRerank_ReordersByRankingIndex(t *testing.T) {
	out, err := Rerank(context.Background(), fakeReranker{}, "query", []string{"first", "second"}, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"second", "first"}, out)
}
