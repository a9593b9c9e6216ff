// Package traversal implements the orchestration engine: the single
// entry point that fetches seeds, drives a Strategy round by round over an
// Adapter, and returns the finalized node sequence (SPEC_FULL.md §4.4).
package traversal

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/brain2labs/graphtraverse/internal/adapter"
	"github.com/brain2labs/graphtraverse/internal/edges"
	"github.com/brain2labs/graphtraverse/internal/graph"
	"github.com/brain2labs/graphtraverse/internal/strategy"
	"github.com/brain2labs/graphtraverse/internal/tracker"
	"github.com/brain2labs/graphtraverse/internal/vectormath"
	apperrors "github.com/brain2labs/graphtraverse/pkg/errors"
)

// Traversal is single-shot: Traverse may be called exactly once. Reuse
// fails with AlreadyUsed, the Go analogue of the teacher's optimistic-lock
// version field on a mutable record.
type Traversal struct {
	opts     Options
	edgeFn   edges.Function
	strategy strategy.Strategy
	logger   *zap.Logger
	used     atomic.Bool
}

// New validates opts and builds a Traversal ready to run exactly once.
func New(opts Options) (*Traversal, error) {
	logger := opts.resolveLogger()
	edgeFn, err := opts.resolveEdgeFunc(logger)
	if err != nil {
		return nil, err
	}
	return &Traversal{
		opts:     opts,
		edgeFn:   edgeFn,
		strategy: opts.resolveStrategy(),
		logger:   logger,
	}, nil
}

// Traverse runs the traversal for query and returns the finalized node
// sequence. It must not be called more than once on the same instance.
func (t *Traversal) Traverse(ctx context.Context, query string) ([]*graph.Node, error) {
	if !t.used.CompareAndSwap(false, true) {
		return nil, apperrors.NewAlreadyUsed("traversal instance already invoked")
	}

	discovered := make(map[string]struct{})
	visitedEdges := make(map[graph.Edge]struct{})
	edgeDepths := make(map[graph.Edge]int)
	edgesVisitedCount := 0

	queryEmbedding, seeds, err := t.fetchSeeds(ctx, query)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	seedNodes, err := t.materialize(seeds, 0, discovered)
	if err != nil {
		return nil, err
	}
	if err := scoreNodes(seedNodes, queryEmbedding); err != nil {
		return nil, err
	}

	tctx := strategy.TraversalContext{QueryEmbedding: queryEmbedding}
	tr := tracker.New(t.strategy.SelectK(), t.strategy.MaxDepth())

	if err := t.strategy.Iteration(tctx, seedNodes, tr); err != nil {
		return nil, err
	}

	for !tr.ShouldStop() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		frontier := tr.DrainToTraverse()
		roundEdges := t.collectRoundEdges(frontier, visitedEdges, edgeDepths, &edgesVisitedCount)
		if len(roundEdges) == 0 {
			break
		}

		contents, err := t.opts.Store.Adjacent(ctx, roundEdges, queryEmbedding,
			adapter.WithK(t.strategy.AdjacentK()),
			adapter.WithFilter(t.opts.MetadataFilter),
			adapter.WithKwargs(t.opts.StoreKwargs))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, apperrors.Wrap(err, "adjacent expansion")
		}

		newNodes, err := t.materializeAtDepth(contents, edgeDepths, discovered)
		if err != nil {
			return nil, err
		}
		if err := scoreNodes(newNodes, queryEmbedding); err != nil {
			return nil, err
		}

		if err := t.strategy.Iteration(tctx, newNodes, tr); err != nil {
			return nil, err
		}
	}

	return t.strategy.FinalizeNodes(tr.Selected()), nil
}

// fetchSeeds dispatches the id-get and similarity-search seed sources
// together and awaits them jointly (§5): the only parallelism this engine
// performs.
func (t *Traversal) fetchSeeds(ctx context.Context, query string) ([]float64, []graph.Content, error) {
	var queryEmbedding []float64
	var rootContents, searchContents []graph.Content

	g, gctx := errgroup.WithContext(ctx)

	if len(t.opts.InitialRootIDs) > 0 {
		g.Go(func() error {
			cs, err := t.opts.Store.Get(gctx, t.opts.InitialRootIDs, adapter.WithFilter(t.opts.MetadataFilter))
			if err != nil {
				return apperrors.Wrap(err, "seed fetch: get initial roots")
			}
			rootContents = cs
			return nil
		})
	}

	if t.strategy.StartK() > 0 {
		g.Go(func() error {
			emb, cs, err := t.opts.Store.SearchWithEmbedding(gctx, query,
				adapter.WithK(t.strategy.StartK()),
				adapter.WithFilter(t.opts.MetadataFilter),
				adapter.WithKwargs(t.opts.StoreKwargs))
			if err != nil {
				return apperrors.Wrap(err, "seed fetch: search")
			}
			queryEmbedding = emb
			searchContents = cs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, err
	}

	seeds := make([]graph.Content, 0, len(rootContents)+len(searchContents))
	seeds = append(seeds, rootContents...)
	seeds = append(seeds, searchContents...)
	return queryEmbedding, seeds, nil
}

// materialize converts seed contents into depth-0 nodes, skipping ids
// already discovered.
func (t *Traversal) materialize(contents []graph.Content, depth int, discovered map[string]struct{}) ([]*graph.Node, error) {
	nodes := make([]*graph.Node, 0, len(contents))
	for _, c := range contents {
		if _, ok := discovered[c.ID]; ok {
			continue
		}
		if err := validateContent(c); err != nil {
			return nil, err
		}
		ed, err := t.edgeFn(c)
		if err != nil {
			return nil, err
		}
		discovered[c.ID] = struct{}{}
		nodes = append(nodes, graph.NewNode(c, ed, depth))
	}
	return nodes, nil
}

// materializeAtDepth converts expansion-round contents into nodes, deriving
// each node's depth from edgeDepths per §4.4 step 3e.
func (t *Traversal) materializeAtDepth(contents []graph.Content, edgeDepths map[graph.Edge]int, discovered map[string]struct{}) ([]*graph.Node, error) {
	nodes := make([]*graph.Node, 0, len(contents))
	for _, c := range contents {
		if _, ok := discovered[c.ID]; ok {
			continue
		}
		if err := validateContent(c); err != nil {
			return nil, err
		}
		ed, err := t.edgeFn(c)
		if err != nil {
			return nil, err
		}
		depth := t.depthFor(ed.Incoming, edgeDepths)
		discovered[c.ID] = struct{}{}
		nodes = append(nodes, graph.NewNode(c, ed, depth))
	}
	return nodes, nil
}

// validateContent enforces the two invariants every adapter-returned
// Content must satisfy before it becomes a Node: a non-empty id (it is the
// vertex key the whole engine indexes by) and a non-empty embedding (it is
// scored against the query embedding the moment its round completes).
func validateContent(c graph.Content) error {
	if c.ID == "" {
		return apperrors.NewMissingID("adapter returned a content with no id")
	}
	if len(c.Embedding) == 0 {
		return apperrors.NewMissingEmbedding("content %q has no embedding", c.ID)
	}
	return nil
}

// depthFor computes min{edgeDepths[e] : e in incoming ∩ edgeDepths.keys},
// falling back to 0 (with a warning) when no incoming edge of this node was
// the one that triggered its discovery -- an engine-invariant violation
// §9 treats as acceptable defensive behavior rather than a fatal error.
func (t *Traversal) depthFor(incoming graph.EdgeSet, edgeDepths map[graph.Edge]int) int {
	min := -1
	for e := range incoming {
		if d, ok := edgeDepths[e]; ok && (min == -1 || d < min) {
			min = d
		}
	}
	if min == -1 {
		t.logger.Warn("node depth fallback: no incoming edge matched this round's edgeDepths, defaulting to 0")
		return 0
	}
	return min
}

// collectRoundEdges gathers each frontier node's unvisited outgoing edges,
// marks them visited, records their depth, and enforces maxTraverse (§4.4
// "Edge budget"): once the budget is spent, no further edges are marked
// visited for expansion, though already-collected edges this round still
// resolve.
func (t *Traversal) collectRoundEdges(frontier []*graph.Node, visitedEdges map[graph.Edge]struct{}, edgeDepths map[graph.Edge]int, edgesVisitedCount *int) []graph.Edge {
	maxTraverse := t.strategy.MaxTraverse()
	var roundEdges []graph.Edge

	for _, n := range frontier {
		for e := range n.OutgoingEdges {
			if _, seen := visitedEdges[e]; seen {
				continue
			}
			if maxTraverse != nil && *edgesVisitedCount >= *maxTraverse {
				continue
			}
			visitedEdges[e] = struct{}{}
			edgeDepths[e] = n.Depth + 1
			*edgesVisitedCount++
			roundEdges = append(roundEdges, e)
		}
	}

	return roundEdges
}

// scoreNodes computes each node's similarity score against queryEmbedding
// via a single batched cosine call (§4.4), leaving scores at their zero
// value when no query embedding was produced this traversal (startK=0).
func scoreNodes(nodes []*graph.Node, queryEmbedding []float64) error {
	if queryEmbedding == nil || len(nodes) == 0 {
		return nil
	}

	embeddings := make([][]float64, len(nodes))
	for i, n := range nodes {
		embeddings[i] = n.Embedding
	}

	sims, err := vectormath.SimilarityMatrix(embeddings, [][]float64{queryEmbedding})
	if err != nil {
		return err
	}
	for i, n := range nodes {
		n.SimilarityScore = sims[i][0]
	}
	return nil
}
