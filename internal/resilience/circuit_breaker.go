// Package resilience decorates an adapter.Adapter with a circuit breaker so
// a struggling vector store fails fast instead of stacking up latency across
// concurrent traversals.
package resilience

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/brain2labs/graphtraverse/internal/adapter"
	"github.com/brain2labs/graphtraverse/internal/graph"
	apperrors "github.com/brain2labs/graphtraverse/pkg/errors"
)

// BreakerConfig configures the circuit breaker wrapping an Adapter.
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// FailureRatio is the fraction of requests within Interval that must
	// fail, once MinRequests have been observed, to trip the breaker open.
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreakerConfig returns conservative defaults suitable for a
// single-adapter traversal server.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  3,
		Interval:     30 * time.Second,
		Timeout:      10 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// WrapAdapter returns an Adapter that routes every call through a circuit
// breaker, tripping open once FailureRatio of MinRequests-or-more calls
// within Interval have failed.
func WrapAdapter(inner adapter.Adapter, config BreakerConfig) adapter.Adapter {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= config.FailureRatio
		},
	})
	return &brokenAdapter{inner: inner, cb: cb}
}

type brokenAdapter struct {
	inner adapter.Adapter
	cb    *gobreaker.CircuitBreaker
}

func execute[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	result, err := cb.Execute(func() (any, error) {
		v, err := fn()
		return v, err
	})
	if err != nil {
		var zero T
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return zero, apperrors.NewAdapterError(err, "circuit breaker rejected request")
		}
		return zero, err
	}
	return result.(T), nil
}

func (b *brokenAdapter) SearchWithEmbedding(ctx context.Context, query string, opts ...adapter.Option) ([]float64, []graph.Content, error) {
	type pair struct {
		emb      []float64
		contents []graph.Content
	}
	p, err := execute(b.cb, func() (pair, error) {
		emb, contents, err := b.inner.SearchWithEmbedding(ctx, query, opts...)
		return pair{emb, contents}, err
	})
	return p.emb, p.contents, err
}

func (b *brokenAdapter) Search(ctx context.Context, embedding []float64, opts ...adapter.Option) ([]graph.Content, error) {
	return execute(b.cb, func() ([]graph.Content, error) {
		return b.inner.Search(ctx, embedding, opts...)
	})
}

func (b *brokenAdapter) Get(ctx context.Context, ids []string, opts ...adapter.Option) ([]graph.Content, error) {
	return execute(b.cb, func() ([]graph.Content, error) {
		return b.inner.Get(ctx, ids, opts...)
	})
}

func (b *brokenAdapter) Adjacent(ctx context.Context, edges []graph.Edge, queryEmbedding []float64, opts ...adapter.Option) ([]graph.Content, error) {
	return execute(b.cb, func() ([]graph.Content, error) {
		return b.inner.Adjacent(ctx, edges, queryEmbedding, opts...)
	})
}

var _ adapter.Adapter = (*brokenAdapter)(nil)
