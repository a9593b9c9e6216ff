package graphbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brain2labs/graphtraverse/internal/edges"
	"github.com/brain2labs/graphtraverse/internal/graph"
	apperrors "github.com/brain2labs/graphtraverse/pkg/errors"
)

func docs() []graph.Content {
	return []graph.Content{
		graph.NewContent("d1", "Paris", nil, map[string]any{"country": "FR"}),
		graph.NewContent("d2", "Eiffel", nil, map[string]any{"country": "FR"}),
		graph.NewContent("d3", "Cuisine", nil, map[string]any{"country": "FR"}),
		graph.NewContent("d4", "London", nil, map[string]any{"country": "UK"}),
	}
}

func TestBuildProducesArcsWithinMatchingCountryGroupOnly(t *testing.T) {
	fn, err := edges.NewMetadataEdgeFunction([]graph.EdgeSpec{{Source: "country", Target: "country"}})
	require.NoError(t, err)

	g, err := Build(docs(), fn.Extract)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"d1", "d2", "d3", "d4"}, g.Nodes)

	for _, arc := range g.Arcs {
		assert.NotEqual(t, arc.From, arc.To, "self-loops must be omitted")
		assert.False(t, (arc.From == "d4") != (arc.To == "d4"), "UK document must not arc to/from an FR document")
	}
	assert.NotEmpty(t, g.Arcs)
}

func TestFindCommunitiesSeparatesDisconnectedGroups(t *testing.T) {
	fn, err := edges.NewMetadataEdgeFunction([]graph.EdgeSpec{{Source: "country", Target: "country"}})
	require.NoError(t, err)

	g, err := Build(docs(), fn.Extract)
	require.NoError(t, err)

	communities := FindCommunities(g)
	require.Len(t, communities, 2)

	sizes := []int{len(communities[0].NodeIDs), len(communities[1].NodeIDs)}
	assert.Equal(t, []int{3, 1}, sizes, "largest community first")

	assert.ElementsMatch(t, []string{"d1", "d2", "d3"}, communities[0].NodeIDs)
	assert.ElementsMatch(t, []string{"d4"}, communities[1].NodeIDs)
}

func TestBuildRejectsContentWithNoID(t *testing.T) {
	fn, err := edges.NewMetadataEdgeFunction([]graph.EdgeSpec{{Source: "country", Target: "country"}})
	require.NoError(t, err)

	contents := append(docs(), graph.NewContent("", "no id", nil, map[string]any{"country": "FR"}))
	_, err = Build(contents, fn.Extract)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindMissingID))
}

func TestFindCommunitiesWithNoArcsYieldsSingletons(t *testing.T) {
	g := &Graph{Nodes: []string{"a", "b", "c"}}
	communities := FindCommunities(g)
	require.Len(t, communities, 3)
	for _, c := range communities {
		assert.Len(t, c.NodeIDs, 1)
	}
}
