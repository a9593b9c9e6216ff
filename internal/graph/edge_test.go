package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataEdgesWithEqualFieldsAreStructurallyEqual(t *testing.T) {
	a := NewMetadataEdge("country", "FR")
	b := NewMetadataEdge("country", "FR")
	assert.Equal(t, a, b)
	assert.True(t, a == b, "Edge must be usable as a plain comparable map key")
}

func TestMetadataEdgesWithDifferentValuesAreNotEqual(t *testing.T) {
	a := NewMetadataEdge("country", "FR")
	b := NewMetadataEdge("country", "UK")
	assert.NotEqual(t, a, b)
}

func TestIDEdgeAndMetadataEdgeNeverCollide(t *testing.T) {
	idEdge := NewIDEdge("doc-1")
	metaEdge := NewMetadataEdge("", "doc-1")
	assert.NotEqual(t, idEdge, metaEdge)
}

func TestEdgeSetDeduplicatesStructuralDuplicates(t *testing.T) {
	set := NewEdgeSet(
		NewMetadataEdge("country", "FR"),
		NewMetadataEdge("country", "FR"),
		NewMetadataEdge("country", "UK"),
	)
	assert.Len(t, set, 2)
	assert.True(t, set.Has(NewMetadataEdge("country", "FR")))
	assert.True(t, set.Has(NewMetadataEdge("country", "UK")))
	assert.False(t, set.Has(NewMetadataEdge("country", "DE")))
}

func TestEdgeSetSliceReturnsEveryMember(t *testing.T) {
	set := NewEdgeSet(NewIDEdge("a"), NewIDEdge("b"))
	assert.ElementsMatch(t, []Edge{NewIDEdge("a"), NewIDEdge("b")}, set.Slice())
}

func TestEdgeStringDistinguishesKinds(t *testing.T) {
	assert.Equal(t, "Id(doc-1)", NewIDEdge("doc-1").String())
	assert.Equal(t, "Metadata(country=FR)", NewMetadataEdge("country", "FR").String())
}
