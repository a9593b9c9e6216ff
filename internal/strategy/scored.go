package strategy

import (
	"container/heap"
	"sort"

	"github.com/brain2labs/graphtraverse/internal/graph"
	"github.com/brain2labs/graphtraverse/internal/tracker"
)

// ScoreFunc ranks a node for the Scored strategy's priority queue.
type ScoreFunc func(n *graph.Node) float64

// Scored pushes every node it sees into a max-heap keyed by a user-supplied
// score, then each round pops the highest-scoring unselected candidates (up
// to the tracker's remaining budget, and PerIterationLimit if set) and
// selects+traverses them.
type Scored struct {
	config
	Scorer            ScoreFunc
	PerIterationLimit *int

	pq scoredHeap
}

// NewScored builds a Scored strategy.
func NewScored(selectK int, scorer ScoreFunc) *Scored {
	s := &Scored{config: config{selectK: selectK, startK: 4, adjacentK: 10}, Scorer: scorer}
	heap.Init(&s.pq)
	return s
}

var _ Strategy = (*Scored)(nil)

// Iteration implements Strategy.
func (s *Scored) Iteration(_ TraversalContext, nodes []*graph.Node, tr *tracker.Tracker) error {
	for _, n := range nodes {
		heap.Push(&s.pq, &scoredItem{node: n, score: s.Scorer(n)})
	}

	limit := tr.NumRemaining()
	if s.PerIterationLimit != nil && *s.PerIterationLimit < limit {
		limit = *s.PerIterationLimit
	}

	popped := make([]*graph.Node, 0, limit)
	for i := 0; i < limit && s.pq.Len() > 0; i++ {
		item := heap.Pop(&s.pq).(*scoredItem)
		item.node.ExtraMetadata[graph.AnnotationScore] = item.score
		popped = append(popped, item.node)
	}

	tr.SelectAndTraverse(popped)
	return nil
}

// FinalizeNodes implements Strategy: re-sort by _score descending, then take
// the first selectK.
func (s *Scored) FinalizeNodes(selected []*graph.Node) []*graph.Node {
	sorted := append([]*graph.Node(nil), selected...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scoreOf(sorted[i]) > scoreOf(sorted[j])
	})
	return firstK(sorted, s.selectK)
}

func scoreOf(n *graph.Node) float64 {
	if v, ok := n.ExtraMetadata[graph.AnnotationScore].(float64); ok {
		return v
	}
	return 0
}

// scoredItem is one entry in the Scored strategy's priority queue.
type scoredItem struct {
	node  *graph.Node
	score float64
}

// scoredHeap is a binary max-heap over scoredItem.score (container/heap is
// sufficient per SPEC_FULL.md §9; no Fibonacci heap needed).
type scoredHeap []*scoredItem

func (h scoredHeap) Len() int            { return len(h) }
func (h scoredHeap) Less(i, j int) bool  { return h[i].score > h[j].score }
func (h scoredHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *scoredHeap) Push(x any)         { *h = append(*h, x.(*scoredItem)) }
func (h *scoredHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
