package strategy

import (
	"github.com/brain2labs/graphtraverse/internal/graph"
	"github.com/brain2labs/graphtraverse/internal/tracker"
)

// Eager selects and traverses every incoming node -- a plain breadth-first
// frontier policy and the module's default strategy.
type Eager struct {
	config
}

// NewEager builds an Eager strategy with the given selectK and reasonable
// defaults for the rest of the knobs.
func NewEager(selectK int) *Eager {
	return &Eager{config: config{selectK: selectK, startK: 4, adjacentK: 10}}
}

var _ Strategy = (*Eager)(nil)

// Iteration implements Strategy.
func (e *Eager) Iteration(_ TraversalContext, nodes []*graph.Node, tr *tracker.Tracker) error {
	tr.SelectAndTraverse(nodes)
	return nil
}

// FinalizeNodes implements Strategy: the first selectK selected nodes,
// preserving insertion order.
func (e *Eager) FinalizeNodes(selected []*graph.Node) []*graph.Node {
	return firstK(selected, e.selectK)
}

func firstK(nodes []*graph.Node, k int) []*graph.Node {
	if k < 0 {
		k = 0
	}
	if k > len(nodes) {
		k = len(nodes)
	}
	out := make([]*graph.Node, k)
	copy(out, nodes[:k])
	return out
}
