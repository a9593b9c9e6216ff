package vectormath

import (
	"sort"

	"github.com/brain2labs/graphtraverse/internal/graph"
)

// TopK de-duplicates contents by id (last write wins, but the id keeps its
// first-seen position for tie-breaking), ranks by cosine similarity to
// embedding descending, and returns at most k items. Ties are broken by
// original insertion order: sort.SliceStable preserves it.
func TopK(contents []graph.Content, embedding []float64, k int) []graph.Content {
	order := make([]string, 0, len(contents))
	byID := make(map[string]graph.Content, len(contents))
	for _, c := range contents {
		if _, seen := byID[c.ID]; !seen {
			order = append(order, c.ID)
		}
		byID[c.ID] = c
	}

	type scored struct {
		content graph.Content
		score   float64
	}
	deduped := make([]scored, len(order))
	for i, id := range order {
		c := byID[id]
		deduped[i] = scored{content: c, score: Cosine(embedding, c.Embedding)}
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].score > deduped[j].score
	})

	if k < 0 {
		k = 0
	}
	if k > len(deduped) {
		k = len(deduped)
	}
	out := make([]graph.Content, k)
	for i := 0; i < k; i++ {
		out[i] = deduped[i].content
	}
	return out
}
