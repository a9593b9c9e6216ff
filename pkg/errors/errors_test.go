package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageIncludesKindAndMessage(t *testing.T) {
	err := NewMissingEdges("no edges configured")
	assert.Equal(t, "MISSING_EDGES: no edges configured", err.Error())
}

func TestErrorMessageIncludesWrappedCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAdapterError(cause, "search failed")
	assert.Contains(t, err.Error(), "ADAPTER_ERROR")
	assert.Contains(t, err.Error(), "search failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUnwrapExposesUnderlyingCause(t *testing.T) {
	cause := errors.New("timeout")
	err := NewAdapterError(cause, "adjacent failed")
	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesOnKind(t *testing.T) {
	err := NewAlreadyUsed("traversal already invoked")
	assert.True(t, Is(err, KindAlreadyUsed))
	assert.False(t, Is(err, KindMissingEdges))
}

func TestIsReturnsFalseForForeignErrors(t *testing.T) {
	assert.False(t, Is(errors.New("plain error"), KindAdapterError))
}

func TestWrapPreservesKindAndPrependsMessage(t *testing.T) {
	inner := NewDimensionMismatch("128 vs 256")
	wrapped := Wrap(inner, "scoring nodes")

	var e *Error
	require := assert.New(t)
	require.ErrorAs(wrapped, &e)
	require.Equal(KindDimensionMismatch, e.Kind)
	require.Contains(wrapped.Error(), "scoring nodes")
	require.Contains(wrapped.Error(), "128 vs 256")
}

func TestWrapOnForeignErrorFallsBackToAdapterKind(t *testing.T) {
	wrapped := Wrap(errors.New("boom"), "fetching seeds")

	var e *Error
	assert.ErrorAs(t, wrapped, &e)
	assert.Equal(t, KindAdapterError, e.Kind)
}

func TestWrapOnNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "unused"))
}
