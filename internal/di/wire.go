//go:build wireinject
// +build wireinject

// This file is never compiled into the binary; it documents the dependency
// graph container.go builds by hand, for `wire` to regenerate if this
// package ever outgrows manual wiring.
package di

import (
	"github.com/google/wire"

	"github.com/brain2labs/graphtraverse/internal/adapter"
	"github.com/brain2labs/graphtraverse/internal/config"
	"github.com/brain2labs/graphtraverse/internal/observability"
	"github.com/brain2labs/graphtraverse/internal/resilience"
)

// ProviderSet mirrors NewContainer's construction order.
var ProviderSet = wire.NewSet(
	config.Load,
	provideLogger,
	provideMetrics,
	provideTracer,
	provideResilientAdapter,
	wire.Struct(new(Container), "*"),
)

func provideLogger(cfg *config.Config) (*observability.Logger, error) {
	return observability.NewLogger(string(cfg.Environment))
}

func provideMetrics(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(cfg.Observability.MetricsNamespace)
}

func provideTracer(cfg *config.Config) (*observability.TracerProvider, error) {
	return observability.InitTracing(observability.TracingConfig{
		ServiceName: "graphtraverse",
		Environment: string(cfg.Environment),
		SampleRate:  cfg.Observability.TraceSampleRate,
	})
}

func provideResilientAdapter(cfg *config.Config, base adapter.Adapter) adapter.Adapter {
	return resilience.WrapAdapter(base, resilience.BreakerConfig{
		Name:         "vector-store",
		MaxRequests:  cfg.Resilience.MaxRequests,
		Interval:     cfg.Resilience.Interval,
		Timeout:      cfg.Resilience.Timeout,
		FailureRatio: cfg.Resilience.FailureRate,
		MinRequests:  5,
	})
}

func InitializeContainer(base adapter.Adapter) (*Container, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
