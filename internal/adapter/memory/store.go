// Package memory provides the in-memory reference Adapter: its filter and
// similarity semantics are the behavioral contract every other adapter must
// satisfy (SPEC_FULL.md §4.5).
package memory

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/brain2labs/graphtraverse/internal/adapter"
	"github.com/brain2labs/graphtraverse/internal/graph"
	"github.com/brain2labs/graphtraverse/internal/vectormath"
)

// EmbeddingFunc maps query text to a fixed-dimension embedding.
type EmbeddingFunc func(text string) []float64

// Store is the in-memory reference Adapter. It must be reentrant for read
// operations: Adapter instances may be shared across traversals (§5), so
// every read method takes store.mu as a read lock; Add takes it as a write
// lock.
type Store struct {
	mu       sync.RWMutex
	contents map[string]graph.Content
	// order records insertion order so that Search's candidate list -- and
	// therefore topK's stable tie-break -- does not depend on Go's
	// randomized map iteration order.
	order []string
	embed EmbeddingFunc
}

// New builds a Store seeded with contents, keyed by their own id.
func New(embed EmbeddingFunc, contents ...graph.Content) *Store {
	s := &Store{
		contents: make(map[string]graph.Content, len(contents)),
		embed:    embed,
	}
	for _, c := range contents {
		s.Add(c)
	}
	return s
}

// Add inserts or replaces a content, preserving its original insertion
// position on replace.
func (s *Store) Add(c graph.Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.contents[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.contents[c.ID] = c
}

var _ adapter.Adapter = (*Store)(nil)

// SearchWithEmbedding implements adapter.Adapter.
func (s *Store) SearchWithEmbedding(ctx context.Context, query string, opts ...adapter.Option) ([]float64, []graph.Content, error) {
	embedding := s.embed(query)
	results, err := s.Search(ctx, embedding, opts...)
	return embedding, results, err
}

// Search implements adapter.Adapter.
func (s *Store) Search(ctx context.Context, embedding []float64, opts ...adapter.Option) ([]graph.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o := resolve(opts...)

	s.mu.RLock()
	candidates := make([]graph.Content, 0, len(s.order))
	for _, id := range s.order {
		c := s.contents[id]
		if matchesFilter(c.Metadata, o.Filter) {
			candidates = append(candidates, c)
		}
	}
	s.mu.RUnlock()

	return vectormath.TopK(candidates, embedding, o.K), nil
}

// Get implements adapter.Adapter.
func (s *Store) Get(ctx context.Context, ids []string, opts ...adapter.Option) ([]graph.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o := resolve(opts...)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]graph.Content, 0, len(ids))
	for _, id := range ids {
		c, ok := s.contents[id]
		if !ok {
			continue
		}
		if !matchesFilter(c.Metadata, o.Filter) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Adjacent implements adapter.Adapter using the package-level default
// semantics (§4.5): the in-memory store has no native query language to push
// filters into, so it is the canonical user of adapter.DefaultAdjacent.
func (s *Store) Adjacent(ctx context.Context, edges []graph.Edge, queryEmbedding []float64, opts ...adapter.Option) ([]graph.Content, error) {
	return adapter.DefaultAdjacent(ctx, s, edges, queryEmbedding, opts...)
}

func resolve(opts ...adapter.Option) adapter.Options {
	o := adapter.Options{K: 4}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// matchesFilter implements the filter contract every adapter must preserve:
// dotted keys perform nested lookup; the filter value equals the content
// value, or (for array-valued content) is an element of that array; an
// absent key fails the match.
func matchesFilter(metadata map[string]any, filter map[string]any) bool {
	for key, want := range filter {
		got, ok := lookupDotted(key, metadata)
		if !ok {
			return false
		}
		if !valueMatches(got, want) {
			return false
		}
	}
	return true
}

func lookupDotted(path string, metadata map[string]any) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = metadata
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func valueMatches(got, want any) bool {
	if reflect.DeepEqual(got, want) {
		return true
	}
	v := reflect.ValueOf(got)
	if v.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		if reflect.DeepEqual(v.Index(i).Interface(), want) {
			return true
		}
	}
	return false
}
