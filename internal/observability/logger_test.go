package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/brain2labs/graphtraverse/pkg/errors"
)

func TestNewLoggerBuildsForDevelopmentAndProduction(t *testing.T) {
	dev, err := NewLogger("development")
	require.NoError(t, err)
	require.NotNil(t, dev.Logger)

	prod, err := NewLogger("production")
	require.NoError(t, err)
	require.NotNil(t, prod.Logger)
}

func TestWithContextAttachesRequestID(t *testing.T) {
	l, err := NewLogger("development")
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-123")
	scoped := l.WithContext(ctx)
	assert.NotNil(t, scoped)
}

func TestWithContextReturnsSameLoggerWithoutRequestID(t *testing.T) {
	l, err := NewLogger("development")
	require.NoError(t, err)

	scoped := l.WithContext(context.Background())
	assert.Same(t, l, scoped)
}

func TestLogErrorIsNoopOnNilError(t *testing.T) {
	l, err := NewLogger("development")
	require.NoError(t, err)
	l.LogError("should not panic", nil)
}

func TestLogErrorAttachesKindForModuleErrors(t *testing.T) {
	l, err := NewLogger("development")
	require.NoError(t, err)
	l.LogError("traversal failed", apperrors.NewMissingEdges("no edges"))
}

func TestLogErrorHandlesForeignErrors(t *testing.T) {
	l, err := NewLogger("development")
	require.NoError(t, err)
	l.LogError("adapter call failed", errors.New("connection refused"))
}
