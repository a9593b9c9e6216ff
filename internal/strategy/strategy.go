// Package strategy implements the pluggable frontier policy the traversal
// engine drives each round (SPEC_FULL.md §4.3): which newly materialized
// nodes get selected for output, which get queued for expansion, and how
// the final selected set is ordered.
package strategy

import (
	"github.com/brain2labs/graphtraverse/internal/graph"
	"github.com/brain2labs/graphtraverse/internal/tracker"
)

// TraversalContext is per-call, engine-owned state passed into every
// Iteration call instead of being written onto the Strategy value -- see
// SPEC_FULL.md §4.3.1, which resolves the "strategy as an open object
// mutated by the engine" re-architecture note.
type TraversalContext struct {
	QueryEmbedding []float64
}

// Strategy decides which frontier nodes are selected for output and which
// are queued for expansion.
type Strategy interface {
	SelectK() int
	StartK() int
	AdjacentK() int
	MaxDepth() *int
	MaxTraverse() *int

	// Iteration is invoked once per round with the newly materialized
	// nodes; it must call tr.Select / tr.Traverse / tr.SelectAndTraverse to
	// advance the traversal.
	Iteration(ctx TraversalContext, nodes []*graph.Node, tr *tracker.Tracker) error

	// FinalizeNodes is called once at the end, given every node the
	// strategy selected over the whole traversal.
	FinalizeNodes(selected []*graph.Node) []*graph.Node

	// configure applies Build() overrides. Unexported so only this package
	// (and Build, which lives here) can mutate a strategy's knobs.
	configure(BuildOptions)
}

// BuildOptions are the strategy knobs settable independent of a strategy's
// own constructor, per SPEC_FULL.md §6.
type BuildOptions struct {
	SelectK     *int
	StartK      *int
	AdjacentK   *int
	MaxDepth    *int
	MaxTraverse *int
	// K is a legacy alias for SelectK; Build treats it as SelectK when
	// SelectK itself is not also supplied.
	K *int
}

// Build returns s with any set BuildOptions fields applied. It mutates and
// returns the same Strategy value; strategies are constructed fresh per
// traversal so this is safe.
func Build(s Strategy, opts BuildOptions) Strategy {
	if opts.K != nil && opts.SelectK == nil {
		opts.SelectK = opts.K
	}
	s.configure(opts)
	return s
}

// config is the common knob set every built-in strategy embeds.
type config struct {
	selectK     int
	startK      int
	adjacentK   int
	maxDepth    *int
	maxTraverse *int
}

func (c *config) SelectK() int         { return c.selectK }
func (c *config) StartK() int          { return c.startK }
func (c *config) AdjacentK() int       { return c.adjacentK }
func (c *config) MaxDepth() *int       { return c.maxDepth }
func (c *config) MaxTraverse() *int    { return c.maxTraverse }

func (c *config) configure(opts BuildOptions) {
	if opts.SelectK != nil {
		c.selectK = *opts.SelectK
	}
	if opts.StartK != nil {
		c.startK = *opts.StartK
	}
	if opts.AdjacentK != nil {
		c.adjacentK = *opts.AdjacentK
	}
	if opts.MaxDepth != nil {
		c.maxDepth = opts.MaxDepth
	}
	if opts.MaxTraverse != nil {
		c.maxTraverse = opts.MaxTraverse
	}
}
