// Package adapter defines the uniform query surface the traversal engine
// uses against any vector store, per SPEC_FULL.md §4.5. Backend-specific
// adapters (Chroma, OpenSearch, Astra, Cassandra, ...) are out of scope for
// this module; they are external collaborators implementing this interface.
package adapter

import (
	"context"

	"github.com/brain2labs/graphtraverse/internal/graph"
	"github.com/brain2labs/graphtraverse/internal/vectormath"
	apperrors "github.com/brain2labs/graphtraverse/pkg/errors"
)

// Options bundles the optional parameters every adapter call accepts. It is
// the typed "AdapterOptions bag" SPEC_FULL.md §9 calls for in place of an
// open keyword-args surface.
type Options struct {
	K      int
	Filter map[string]any
	Kwargs map[string]any
}

// Option configures Options.
type Option func(*Options)

// WithK overrides the default result cap (4).
func WithK(k int) Option { return func(o *Options) { o.K = k } }

// WithFilter applies a metadata filter to the call.
func WithFilter(filter map[string]any) Option { return func(o *Options) { o.Filter = filter } }

// WithKwargs forwards adapter-specific keyword arguments.
func WithKwargs(kwargs map[string]any) Option { return func(o *Options) { o.Kwargs = kwargs } }

func resolveOptions(opts ...Option) Options {
	o := Options{K: 4}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Adapter is the facade the traversal engine queries for seeds and for
// edge-adjacent content.
type Adapter interface {
	// SearchWithEmbedding embeds query, returns the embedding it used (the
	// engine scores subsequently discovered nodes in this same space) and
	// the top-k similar contents honoring filter.
	SearchWithEmbedding(ctx context.Context, query string, opts ...Option) ([]float64, []graph.Content, error)
	// Search is SearchWithEmbedding with the embedding already computed.
	Search(ctx context.Context, embedding []float64, opts ...Option) ([]graph.Content, error)
	// Get returns at most one content per id, in input order; missing ids
	// and filter mismatches are silently omitted.
	Get(ctx context.Context, ids []string, opts ...Option) ([]graph.Content, error)
	// Adjacent returns the contents reachable from edges, globally ranked by
	// cosine similarity to queryEmbedding and capped at k.
	Adjacent(ctx context.Context, edges []graph.Edge, queryEmbedding []float64, opts ...Option) ([]graph.Content, error)
}

// DefaultAdjacent implements the §4.5 default Adjacent semantics on top of
// any adapter's Search and Get: each Metadata edge becomes one Search call
// whose filter conjoins the base filter with {edge.Field: edge.Value}; Id
// edges are accumulated into a single Get call; results are concatenated and
// globally top-k'd against queryEmbedding. Adapters that can push this down
// into a native query (e.g. an OR of filters) may implement Adjacent
// themselves instead of calling this helper.
func DefaultAdjacent(ctx context.Context, a Adapter, edges []graph.Edge, queryEmbedding []float64, opts ...Option) ([]graph.Content, error) {
	base := resolveOptions(opts...)

	var ids []string
	var all []graph.Content

	for _, e := range edges {
		switch e.Kind {
		case graph.KindID:
			ids = append(ids, e.ID)
		case graph.KindMetadata:
			filter := mergeFilter(base.Filter, e.Field, e.Value)
			results, err := a.Search(ctx, queryEmbedding, WithK(base.K), WithFilter(filter), WithKwargs(base.Kwargs))
			if err != nil {
				return nil, err
			}
			all = append(all, results...)
		default:
			return nil, apperrors.NewUnsupportedEdge("adjacent: unsupported edge kind %v", e.Kind)
		}
	}

	if len(ids) > 0 {
		results, err := a.Get(ctx, ids, WithFilter(base.Filter), WithKwargs(base.Kwargs))
		if err != nil {
			return nil, err
		}
		all = append(all, results...)
	}

	return vectormath.TopK(all, queryEmbedding, base.K), nil
}

func mergeFilter(base map[string]any, field string, value any) map[string]any {
	merged := make(map[string]any, len(base)+1)
	for k, v := range base {
		merged[k] = v
	}
	merged[field] = value
	return merged
}
