package strategy

import (
	"math"

	"github.com/brain2labs/graphtraverse/internal/graph"
	"github.com/brain2labs/graphtraverse/internal/tracker"
	"github.com/brain2labs/graphtraverse/internal/vectormath"
)

// Mmr is the maximal-marginal-relevance strategy supplemented from
// original_source's strategy test suite (tests/strategies/test_mmr.py),
// which exercises it even though spec.md's prose only names Eager and
// Scored. Each round it re-ranks the accumulated candidate pool by
// lambda*similarity - (1-lambda)*redundancy and greedily selects (and
// traverses) the best-scoring candidate until the tracker's budget or the
// pool is exhausted.
type Mmr struct {
	config
	Lambda float64

	poolOrder []string
	pool      map[string]*graph.Node
	selected  map[string]struct{}
	selectedE [][]float64
}

// NewMmr builds an Mmr strategy with the given selectK and a default
// lambda of 0.5 (equal weight between relevance and diversity).
func NewMmr(selectK int) *Mmr {
	return &Mmr{
		config:   config{selectK: selectK, startK: 4, adjacentK: 10},
		Lambda:   0.5,
		pool:     map[string]*graph.Node{},
		selected: map[string]struct{}{},
	}
}

var _ Strategy = (*Mmr)(nil)

// Iteration implements Strategy.
func (m *Mmr) Iteration(_ TraversalContext, nodes []*graph.Node, tr *tracker.Tracker) error {
	for _, n := range nodes {
		if _, already := m.selected[n.ID]; already {
			continue
		}
		if _, inPool := m.pool[n.ID]; inPool {
			continue
		}
		m.pool[n.ID] = n
		m.poolOrder = append(m.poolOrder, n.ID)
	}

	for tr.NumRemaining() > 0 && len(m.pool) > 0 {
		best := m.pickBest()
		delete(m.pool, best.ID)
		m.selected[best.ID] = struct{}{}
		m.selectedE = append(m.selectedE, best.Embedding)
		tr.SelectAndTraverse([]*graph.Node{best})
	}

	return nil
}

func (m *Mmr) pickBest() *graph.Node {
	var best *graph.Node
	bestScore := math.Inf(-1)
	for _, id := range m.poolOrder {
		cand, ok := m.pool[id]
		if !ok {
			continue // already picked in an earlier round, id left stale in poolOrder
		}
		score := m.Lambda*cand.SimilarityScore - (1-m.Lambda)*m.redundancy(cand)
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}

func (m *Mmr) redundancy(cand *graph.Node) float64 {
	max := 0.0
	for _, e := range m.selectedE {
		if sim := vectormath.Cosine(cand.Embedding, e); sim > max {
			max = sim
		}
	}
	return max
}

// FinalizeNodes implements Strategy: selection order already reflects MMR
// rank, so no re-sort is needed -- just clip to selectK.
func (m *Mmr) FinalizeNodes(selected []*graph.Node) []*graph.Node {
	return firstK(selected, m.selectK)
}
