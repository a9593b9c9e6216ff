// Package tracker implements NodeTracker: the frontier bookkeeping every
// Strategy drives to advance a traversal (SPEC_FULL.md §4.3).
package tracker

import "github.com/brain2labs/graphtraverse/internal/graph"

// Tracker enforces depth, uniqueness, and termination for one traversal. It
// is not safe for concurrent use; a traversal owns exactly one Tracker.
type Tracker struct {
	selectK  int
	maxDepth *int

	selected   []*graph.Node
	selectedID map[string]struct{}

	// toTraverse is kept as an ordered slice, not a map, so that draining it
	// preserves the order nodes were queued in -- the engine's ordering
	// guarantee (§5) that nodes reach the strategy in adapter-produced
	// order, never shuffled by map iteration.
	toTraverse []*graph.Node
	queuedID   map[string]struct{}
}

// New builds a Tracker. maxDepth of nil means unbounded.
func New(selectK int, maxDepth *int) *Tracker {
	return &Tracker{
		selectK:    selectK,
		maxDepth:   maxDepth,
		selectedID: map[string]struct{}{},
		queuedID:   map[string]struct{}{},
	}
}

// Select appends nodes not already selected to the selected list, stamping
// _depth and _similarity_score. similarityScore is assumed already computed
// on each node by the engine.
func (t *Tracker) Select(nodes []*graph.Node) {
	for _, n := range nodes {
		if _, ok := t.selectedID[n.ID]; ok {
			continue
		}
		n.ExtraMetadata[graph.AnnotationDepth] = n.Depth
		n.ExtraMetadata[graph.AnnotationSimilarityScore] = n.SimilarityScore
		t.selected = append(t.selected, n)
		t.selectedID[n.ID] = struct{}{}
	}
}

// Traverse queues nodes for expansion in the next round, skipping nodes
// already queued (this round or any prior round -- guarding against a
// strategy's candidate pool "rediscovering" a node it already handed back,
// which would otherwise double-queue it) and nodes at or past maxDepth. It
// returns the number actually queued.
func (t *Tracker) Traverse(nodes []*graph.Node) int {
	queued := 0
	for _, n := range nodes {
		if _, ok := t.queuedID[n.ID]; ok {
			continue
		}
		if t.maxDepth != nil && n.Depth >= *t.maxDepth {
			continue
		}
		t.toTraverse = append(t.toTraverse, n)
		t.queuedID[n.ID] = struct{}{}
		queued++
	}
	return queued
}

// SelectAndTraverse selects then traverses nodes, returning the traverse count.
func (t *Tracker) SelectAndTraverse(nodes []*graph.Node) int {
	t.Select(nodes)
	return t.Traverse(nodes)
}

// NumRemaining is max(selectK - len(selected), 0).
func (t *Tracker) NumRemaining() int {
	remaining := t.selectK - len(t.selected)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ShouldStop is true once enough nodes are selected or nothing is queued to
// expand.
func (t *Tracker) ShouldStop() bool {
	return t.NumRemaining() == 0 || len(t.toTraverse) == 0
}

// Selected returns the nodes selected so far, in selection order.
func (t *Tracker) Selected() []*graph.Node {
	return t.selected
}

// DrainToTraverse returns the queued frontier and clears it for the next
// round.
func (t *Tracker) DrainToTraverse() []*graph.Node {
	drained := t.toTraverse
	t.toTraverse = nil
	return drained
}
