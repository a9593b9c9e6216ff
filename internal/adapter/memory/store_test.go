package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brain2labs/graphtraverse/internal/adapter"
	"github.com/brain2labs/graphtraverse/internal/graph"
)

func lengthEmbedding(s string) []float64 { return []float64{float64(len(s)), 0, 0} }

func fixture() *Store {
	return New(lengthEmbedding,
		graph.NewContent("d1", "Paris", lengthEmbedding("Paris"), map[string]any{"category": "geo", "country": "FR"}),
		graph.NewContent("d2", "Eiffel", lengthEmbedding("Eiffel"), map[string]any{"category": "landmark", "country": "FR"}),
		graph.NewContent("d3", "Cuisine", lengthEmbedding("Cuisine"), map[string]any{"category": "culture", "country": "FR"}),
		graph.NewContent("d4", "London", lengthEmbedding("London"), map[string]any{"category": "geo", "country": "UK", "tags": []any{"capital", "uk"}}),
	)
}

func TestSearchWithEmbeddingReturnsEmbeddingUsed(t *testing.T) {
	s := fixture()
	emb, results, err := s.SearchWithEmbedding(context.Background(), "Paris", adapter.WithK(1))
	require.NoError(t, err)
	assert.Equal(t, lengthEmbedding("Paris"), emb)
	require.Len(t, results, 1)
	assert.Equal(t, "d1", results[0].ID)
}

func TestFilterExactMatch(t *testing.T) {
	s := fixture()
	results, err := s.Search(context.Background(), lengthEmbedding("city"), adapter.WithK(10), adapter.WithFilter(map[string]any{"country": "FR"}))
	require.NoError(t, err)
	ids := idsOf(results)
	assert.ElementsMatch(t, []string{"d1", "d2", "d3"}, ids)
}

func TestFilterArrayMembership(t *testing.T) {
	s := fixture()
	results, err := s.Search(context.Background(), lengthEmbedding("city"), adapter.WithK(10), adapter.WithFilter(map[string]any{"tags": "capital"}))
	require.NoError(t, err)
	ids := idsOf(results)
	assert.Equal(t, []string{"d4"}, ids)
}

func TestFilterAbsentKeyFailsMatch(t *testing.T) {
	s := fixture()
	results, err := s.Search(context.Background(), lengthEmbedding("city"), adapter.WithK(10), adapter.WithFilter(map[string]any{"tags": "capital"}))
	require.NoError(t, err)
	assert.NotContains(t, idsOf(results), "d1")
}

func TestGetPreservesInputOrderAndOmitsMissing(t *testing.T) {
	s := fixture()
	results, err := s.Get(context.Background(), []string{"d3", "missing", "d1"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "d3", results[0].ID)
	assert.Equal(t, "d1", results[1].ID)
}

func TestAdjacentMetadataEdge(t *testing.T) {
	s := fixture()
	edges := []graph.Edge{graph.NewMetadataEdge("country", "FR")}
	results, err := s.Adjacent(context.Background(), edges, lengthEmbedding("Paris"), adapter.WithK(10))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"d1", "d2", "d3"}, idsOf(results))
}

func TestAdjacentIDEdge(t *testing.T) {
	s := fixture()
	edges := []graph.Edge{graph.NewIDEdge("d4")}
	results, err := s.Adjacent(context.Background(), edges, lengthEmbedding("Paris"), adapter.WithK(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"d4"}, idsOf(results))
}

func TestAdjacentUnsupportedEdgeKind(t *testing.T) {
	s := fixture()
	_, err := s.Adjacent(context.Background(), []graph.Edge{{Kind: 99}}, lengthEmbedding("Paris"))
	require.Error(t, err)
}

func idsOf(contents []graph.Content) []string {
	out := make([]string, len(contents))
	for i, c := range contents {
		out[i] = c.ID
	}
	return out
}
