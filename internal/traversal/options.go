package traversal

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/brain2labs/graphtraverse/internal/edges"
	"github.com/brain2labs/graphtraverse/internal/graph"
	"github.com/brain2labs/graphtraverse/internal/adapter"
	"github.com/brain2labs/graphtraverse/internal/strategy"
	apperrors "github.com/brain2labs/graphtraverse/pkg/errors"
)

// Options configures one Traversal, per SPEC_FULL.md §6's external
// interface table.
type Options struct {
	// Edges is the declarative edge schema. Ignored if EdgeFunc is set.
	Edges []graph.EdgeSpec
	// EdgeFunc, when set, takes priority over Edges -- the escape hatch for
	// schemas MetadataEdgeFunction cannot express (§4.2).
	EdgeFunc edges.Function

	// Strategy is the frontier policy. Defaults to Eager{SelectK: 5}.
	Strategy strategy.Strategy

	// Store is the vector-store facade. Required.
	Store adapter.Adapter

	MetadataFilter map[string]any
	InitialRootIDs []string
	StoreKwargs    map[string]any

	// Logger receives non-fatal diagnostics (skipped edge-extraction
	// elements, depth-fallback warnings). Defaults to a no-op logger.
	Logger *zap.Logger
}

func (o Options) resolveEdgeFunc(logger *zap.Logger) (edges.Function, error) {
	if o.EdgeFunc != nil {
		return o.EdgeFunc, nil
	}
	if len(o.Edges) == 0 {
		return nil, apperrors.NewMissingEdges("traversal requires Edges or EdgeFunc")
	}
	m, err := edges.NewMetadataEdgeFunction(o.Edges, edges.WithWarnFunc(warnFunc(logger)))
	if err != nil {
		return nil, err
	}
	return m.Extract, nil
}

func (o Options) resolveStrategy() strategy.Strategy {
	if o.Strategy != nil {
		return o.Strategy
	}
	return strategy.NewEager(5)
}

func (o Options) resolveLogger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func warnFunc(logger *zap.Logger) edges.WarnFunc {
	return func(format string, args ...any) {
		logger.Warn(fmt.Sprintf(format, args...))
	}
}
