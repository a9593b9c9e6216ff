// Package errors defines the error kinds raised across the traversal engine,
// edge extractor, and adapters.
package errors

import "fmt"

// Kind categorizes an Error by the condition that raised it.
type Kind string

const (
	KindInvalidEdgeSpec   Kind = "INVALID_EDGE_SPEC"
	KindMissingEdges      Kind = "MISSING_EDGES"
	KindAlreadyUsed       Kind = "ALREADY_USED"
	KindDimensionMismatch Kind = "DIMENSION_MISMATCH"
	KindUnsupportedEdge   Kind = "UNSUPPORTED_EDGE"
	KindMissingEmbedding  Kind = "MISSING_EMBEDDING"
	KindMissingID         Kind = "MISSING_ID"
	KindAdapterError      Kind = "ADAPTER_ERROR"
)

// Error is the error type raised by every package in this module.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is and errors.As to see through to the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidEdgeSpec reports an EdgeSpec selector that is neither a string
// nor the "$id" sentinel.
func NewInvalidEdgeSpec(format string, args ...any) error {
	return newf(KindInvalidEdgeSpec, format, args...)
}

// NewMissingEdges reports that a traversal was built with no edge schema.
func NewMissingEdges(format string, args ...any) error {
	return newf(KindMissingEdges, format, args...)
}

// NewAlreadyUsed reports a traversal instance invoked more than once.
func NewAlreadyUsed(format string, args ...any) error {
	return newf(KindAlreadyUsed, format, args...)
}

// NewDimensionMismatch reports cosine inputs of differing width.
func NewDimensionMismatch(format string, args ...any) error {
	return newf(KindDimensionMismatch, format, args...)
}

// NewUnsupportedEdge reports an edge variant an adapter cannot resolve.
func NewUnsupportedEdge(format string, args ...any) error {
	return newf(KindUnsupportedEdge, format, args...)
}

// NewMissingEmbedding reports a content/document conversion without an embedding.
func NewMissingEmbedding(format string, args ...any) error {
	return newf(KindMissingEmbedding, format, args...)
}

// NewMissingID reports a content/document with no id.
func NewMissingID(format string, args ...any) error {
	return newf(KindMissingID, format, args...)
}

// NewAdapterError wraps a failure signaled by the underlying vector store.
func NewAdapterError(err error, format string, args ...any) error {
	return &Error{Kind: KindAdapterError, Message: fmt.Sprintf(format, args...), Err: err}
}

// Wrap re-wraps err with additional context, preserving its Kind when err is
// already an *Error produced by this package.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return &Error{Kind: e.Kind, Message: fmt.Sprintf("%s: %s", message, e.Message), Err: e.Err}
	}
	return &Error{Kind: KindAdapterError, Message: message, Err: err}
}

// Is reports whether err is an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
