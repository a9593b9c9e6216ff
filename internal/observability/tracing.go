package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/brain2labs/graphtraverse/internal/adapter"
	"github.com/brain2labs/graphtraverse/internal/graph"
)

// TracerProvider wraps an OpenTelemetry tracer provider with the
// resource/sampler/propagator wiring every entry point in this module
// shares.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	config   TracingConfig
}

// TracingConfig configures InitTracing.
type TracingConfig struct {
	ServiceName string
	Environment string
	SampleRate  float64
}

// InitTracing builds a TracerProvider exporting spans to stdout (this
// module has no bundled OTLP collector target) and installs it as the
// global provider.
func InitTracing(config TracingConfig) (*TracerProvider, error) {
	if config.ServiceName == "" {
		config.ServiceName = "graphtraverse"
	}
	if config.SampleRate == 0 {
		config.SampleRate = defaultSampleRate(config.Environment)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("build trace exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL,
			semconv.ServiceName(config.ServiceName),
			attribute.String("deployment.environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(config)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return &TracerProvider{provider: tp, tracer: tp.Tracer(config.ServiceName), config: config}, nil
}

func samplerFor(config TracingConfig) sdktrace.Sampler {
	switch config.Environment {
	case "production":
		return sdktrace.TraceIDRatioBased(config.SampleRate)
	default:
		return sdktrace.AlwaysSample()
	}
}

func defaultSampleRate(environment string) float64 {
	if environment == "production" {
		return 0.1
	}
	return 1.0
}

// Shutdown flushes and stops the tracer provider.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	return tp.provider.Shutdown(ctx)
}

// StartSpan starts a span under this provider's tracer.
func (tp *TracerProvider) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return tp.tracer.Start(ctx, name, opts...)
}

// TraceAdapter wraps a.Adapter's four operations in spans, recording
// argument counts/results and any error -- the traversal-domain analogue of
// the teacher's traced-repository decorator.
func TraceAdapter(a adapter.Adapter, tracer trace.Tracer) adapter.Adapter {
	return &tracedAdapter{inner: a, tracer: tracer}
}

type tracedAdapter struct {
	inner  adapter.Adapter
	tracer trace.Tracer
}

func (t *tracedAdapter) SearchWithEmbedding(ctx context.Context, query string, opts ...adapter.Option) ([]float64, []graph.Content, error) {
	ctx, span := t.tracer.Start(ctx, "adapter.SearchWithEmbedding", trace.WithAttributes(
		attribute.Int("query.length", len(query)),
	))
	defer span.End()

	emb, contents, err := t.inner.SearchWithEmbedding(ctx, query, opts...)
	span.SetAttributes(attribute.Int("results.count", len(contents)))
	if err != nil {
		span.RecordError(err)
	}
	return emb, contents, err
}

func (t *tracedAdapter) Search(ctx context.Context, embedding []float64, opts ...adapter.Option) ([]graph.Content, error) {
	ctx, span := t.tracer.Start(ctx, "adapter.Search")
	defer span.End()

	contents, err := t.inner.Search(ctx, embedding, opts...)
	span.SetAttributes(attribute.Int("results.count", len(contents)))
	if err != nil {
		span.RecordError(err)
	}
	return contents, err
}

func (t *tracedAdapter) Get(ctx context.Context, ids []string, opts ...adapter.Option) ([]graph.Content, error) {
	ctx, span := t.tracer.Start(ctx, "adapter.Get", trace.WithAttributes(
		attribute.Int("ids.count", len(ids)),
	))
	defer span.End()

	contents, err := t.inner.Get(ctx, ids, opts...)
	span.SetAttributes(attribute.Int("results.count", len(contents)))
	if err != nil {
		span.RecordError(err)
	}
	return contents, err
}

func (t *tracedAdapter) Adjacent(ctx context.Context, edges []graph.Edge, queryEmbedding []float64, opts ...adapter.Option) ([]graph.Content, error) {
	ctx, span := t.tracer.Start(ctx, "adapter.Adjacent", trace.WithAttributes(
		attribute.Int("edges.count", len(edges)),
	))
	defer span.End()

	contents, err := t.inner.Adjacent(ctx, edges, queryEmbedding, opts...)
	span.SetAttributes(attribute.Int("results.count", len(contents)))
	if err != nil {
		span.RecordError(err)
	}
	return contents, err
}

var _ adapter.Adapter = (*tracedAdapter)(nil)
