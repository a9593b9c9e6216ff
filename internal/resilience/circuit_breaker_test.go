package resilience

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brain2labs/graphtraverse/internal/adapter"
	"github.com/brain2labs/graphtraverse/internal/graph"
)

// failingAdapter fails its first failCount calls to Search, then succeeds.
type failingAdapter struct {
	failCount int32
	calls     int32
}

func (f *failingAdapter) SearchWithEmbedding(ctx context.Context, query string, opts ...adapter.Option) ([]float64, []graph.Content, error) {
	return nil, nil, nil
}

func (f *failingAdapter) Search(ctx context.Context, embedding []float64, opts ...adapter.Option) ([]graph.Content, error) {
	n := atomic.AddInt32(&f.calls, 1)
	if n <= f.failCount {
		return nil, errors.New("upstream unavailable")
	}
	return []graph.Content{graph.NewContent("ok", "ok", []float64{1}, nil)}, nil
}

func (f *failingAdapter) Get(ctx context.Context, ids []string, opts ...adapter.Option) ([]graph.Content, error) {
	return nil, nil
}

func (f *failingAdapter) Adjacent(ctx context.Context, edges []graph.Edge, queryEmbedding []float64, opts ...adapter.Option) ([]graph.Content, error) {
	return nil, nil
}

func TestWrapAdapterTripsOpenAfterFailureThreshold(t *testing.T) {
	inner := &failingAdapter{failCount: 10}
	wrapped := WrapAdapter(inner, BreakerConfig{
		Name:         "test",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  2,
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := wrapped.Search(ctx, []float64{1}, adapter.WithK(1))
		assert.Error(t, err)
	}

	_, err := wrapped.Search(ctx, []float64{1}, adapter.WithK(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker rejected request")
}

func TestWrapAdapterPassesThroughOnSuccess(t *testing.T) {
	inner := &failingAdapter{failCount: 0}
	wrapped := WrapAdapter(inner, DefaultBreakerConfig("passthrough"))

	contents, err := wrapped.Search(context.Background(), []float64{1}, adapter.WithK(1))
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "ok", contents[0].ID)
}
