// Package edges turns content metadata into the bi-directional Edge sets the
// traversal engine walks, per the symmetric EdgeSpec schema in SPEC_FULL.md
// §4.2: a spec (source, target) declares "my source is an outgoing edge
// reachable by matching documents whose target equals my source; my target
// is an incoming edge reached by documents whose source equals my target".
package edges

import (
	"strconv"
	"strings"

	"github.com/brain2labs/graphtraverse/internal/graph"
	apperrors "github.com/brain2labs/graphtraverse/pkg/errors"
)

// Function extracts the incoming/outgoing edge sets for a single Content.
// Callers may supply one of these directly (in place of an EdgeSpec list) to
// express schemas MetadataEdgeFunction cannot.
type Function func(c graph.Content) (graph.Edges, error)

// WarnFunc receives a non-fatal diagnostic, e.g. a skipped non-scalar
// metadata array element. It must not block; the extractor never treats a
// warning as an error.
type WarnFunc func(format string, args ...any)

// MetadataEdgeFunction is the reference edge extractor: a declarative list
// of EdgeSpec resolved against each content's metadata.
type MetadataEdgeFunction struct {
	specs []graph.EdgeSpec
	warn  WarnFunc
}

// Option configures a MetadataEdgeFunction.
type Option func(*MetadataEdgeFunction)

// WithWarnFunc routes non-fatal extraction diagnostics to fn instead of
// discarding them.
func WithWarnFunc(fn WarnFunc) Option {
	return func(m *MetadataEdgeFunction) { m.warn = fn }
}

// NewMetadataEdgeFunction validates specs and builds the extractor. Every
// selector must be a non-empty string; otherwise InvalidEdgeSpec is
// returned.
func NewMetadataEdgeFunction(specs []graph.EdgeSpec, opts ...Option) (*MetadataEdgeFunction, error) {
	if len(specs) == 0 {
		return nil, apperrors.NewMissingEdges("no edge specs supplied")
	}
	for _, s := range specs {
		if s.Source == "" {
			return nil, apperrors.NewInvalidEdgeSpec("edge spec source selector must be a non-empty string")
		}
		if s.Target == "" {
			return nil, apperrors.NewInvalidEdgeSpec("edge spec target selector must be a non-empty string")
		}
	}
	m := &MetadataEdgeFunction{specs: append([]graph.EdgeSpec(nil), specs...), warn: func(string, ...any) {}}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Extract implements Function.
func (m *MetadataEdgeFunction) Extract(c graph.Content) (graph.Edges, error) {
	incoming := graph.EdgeSet{}
	outgoing := graph.EdgeSet{}

	for _, spec := range m.specs {
		m.extractSide(c, spec.Source, spec.Target, outgoing)
		m.extractSide(c, spec.Target, spec.Source, incoming)
	}

	return graph.Edges{Incoming: incoming, Outgoing: outgoing}, nil
}

// extractSide resolves `resolve` against c; each resulting scalar becomes one
// edge named by `name` (either a metadata field, or the content's own id if
// name == "$id").
func (m *MetadataEdgeFunction) extractSide(c graph.Content, resolve, name string, into graph.EdgeSet) {
	value, ok := Resolve(resolve, c)
	if !ok {
		return
	}

	for _, scalar := range m.scalarsOf(value) {
		if name == graph.IDSelector {
			into.Add(graph.NewIDEdge(toIDString(scalar)))
		} else {
			into.Add(graph.NewMetadataEdge(name, scalar))
		}
	}
}

// scalarsOf normalizes value to its scalar components: one element for a
// scalar, one per scalar element for an array (non-scalar elements are
// skipped with a warning), and none for anything else.
func (m *MetadataEdgeFunction) scalarsOf(value any) []any {
	if scalar, ok := NormalizeScalar(value); ok {
		return []any{scalar}
	}

	switch arr := value.(type) {
	case []any:
		out := make([]any, 0, len(arr))
		for _, elem := range arr {
			if scalar, ok := NormalizeScalar(elem); ok {
				out = append(out, scalar)
			} else {
				m.warn("edge extraction: skipping non-scalar array element %#v", elem)
			}
		}
		return out
	case []string:
		out := make([]any, len(arr))
		for i, s := range arr {
			out[i] = s
		}
		return out
	}

	m.warn("edge extraction: skipping non-scalar metadata value %#v", value)
	return nil
}

// Resolve looks up selector against c: "$id" yields c.ID, anything else is a
// dotted path into c.Metadata.
func Resolve(selector string, c graph.Content) (any, bool) {
	if selector == graph.IDSelector {
		return c.ID, true
	}
	return resolveDotted(selector, c.Metadata)
}

func resolveDotted(path string, metadata map[string]any) (any, bool) {
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

// NormalizeScalar reduces v to one of Go's comparable scalar kinds (string,
// bool, int64, float64) so that it can live on an Edge and be used as a map
// key, per SPEC_FULL.md §3.1. Returns ok=false for anything else (maps,
// slices, nil).
func NormalizeScalar(v any) (any, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return t, true
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return nil, false
	}
}

func toIDString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return ""
	}
}
