//go:build !wireinject

// Package di wires this module's components into a runnable Container:
// configuration, a caller-supplied adapter, the logger, metrics collector
// and tracer, and the resilience and tracing decorators around the adapter.
// The HTTP router is built by the caller (cmd/traverse-server).
package di

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/brain2labs/graphtraverse/internal/adapter"
	"github.com/brain2labs/graphtraverse/internal/config"
	"github.com/brain2labs/graphtraverse/internal/observability"
	"github.com/brain2labs/graphtraverse/internal/resilience"
)

// Container holds every long-lived dependency the HTTP server needs.
type Container struct {
	Config    *config.Config
	Logger    *observability.Logger
	Metrics   *observability.Collector
	Tracer    *observability.TracerProvider
	Adapter   adapter.Adapter
	shutdowns []func() error
}

// Option customizes container construction. WithAdapter is the only way to
// supply the adapter, and NewContainer fails without one.
type Option func(*buildState)

type buildState struct {
	adapter adapter.Adapter
}

// WithAdapter overrides the adapter the container wires up (default: none,
// the caller must supply one since this module ships no bundled vector
// store backend).
func WithAdapter(a adapter.Adapter) Option {
	return func(s *buildState) { s.adapter = a }
}

// NewContainer builds a Container from the given config, applying opts.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	state := &buildState{}
	for _, opt := range opts {
		opt(state)
	}
	if state.adapter == nil {
		return nil, fmt.Errorf("di: no adapter supplied, use WithAdapter")
	}

	logger, err := observability.NewLogger(string(cfg.Environment))
	if err != nil {
		return nil, fmt.Errorf("di: build logger: %w", err)
	}

	metrics := observability.NewCollector(cfg.Observability.MetricsNamespace)

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		Adapter: state.adapter,
	}

	if cfg.Observability.TracingEnabled {
		tp, err := observability.InitTracing(observability.TracingConfig{
			ServiceName: "graphtraverse",
			Environment: string(cfg.Environment),
			SampleRate:  cfg.Observability.TraceSampleRate,
		})
		if err != nil {
			return nil, fmt.Errorf("di: init tracing: %w", err)
		}
		c.Tracer = tp
		c.Adapter = observability.TraceAdapter(c.Adapter, otel.Tracer("graphtraverse"))
		c.shutdowns = append(c.shutdowns, func() error { return tp.Shutdown(context.Background()) })
	}

	c.Adapter = resilience.WrapAdapter(c.Adapter, resilience.BreakerConfig{
		Name:         "vector-store",
		MaxRequests:  cfg.Resilience.MaxRequests,
		Interval:     cfg.Resilience.Interval,
		Timeout:      cfg.Resilience.Timeout,
		FailureRatio: cfg.Resilience.FailureRate,
		MinRequests:  5,
	})

	return c, nil
}

// Shutdown releases resources acquired during construction (currently just
// the tracer provider, when tracing was enabled).
func (c *Container) Shutdown() error {
	var firstErr error
	for _, fn := range c.shutdowns {
		if err := fn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
