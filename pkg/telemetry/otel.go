package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/reago-dev/reago"
)

// Default tracer name for reago runtimes.
const defaultTracerName = "reago"

// TraceConfig configures the OpenTelemetry hooks.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "reago").
	TracerName string

	// Attributes are added to every propagation span.
	Attributes []attribute.KeyValue

	// MinUpdates marks spans of passes that performed fewer node
	// updates with a reago.trivial attribute, so tail samplers can
	// drop them. Zero marks none.
	MinUpdates int

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TraceOption configures the OpenTelemetry hooks.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithSpanAttributes adds constant attributes to every span.
func WithSpanAttributes(attrs ...attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// WithMinUpdates sets the pass size below which spans are marked
// trivial.
func WithMinUpdates(n int) TraceOption {
	return func(c *TraceConfig) {
		c.MinUpdates = n
	}
}

// Tracing returns hooks that open one span per propagation pass, with
// the origin node and the number of updates recorded as attributes.
//
// The tracer uses the global OpenTelemetry tracer provider; configure
// it in main() before creating the runtime:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//	rt := reago.NewRuntime(reago.WithHooks(telemetry.Tracing()))
//
// Because a runtime is single-goroutine and passes never nest, the
// hooks keep the live span in a plain field.
func Tracing(opts ...TraceOption) reago.Hooks {
	config := TraceConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	t := &passTracer{config: config}
	return reago.Hooks{
		OnPassStart: t.passStart,
		OnPassEnd:   t.passEnd,
	}
}

// passTracer carries the span of the in-flight pass between hooks.
type passTracer struct {
	config TraceConfig
	span   trace.Span
}

func (t *passTracer) passStart(origin reago.NodeID) {
	attrs := append([]attribute.KeyValue{
		attribute.Int64("reago.origin_node", int64(origin)),
	}, t.config.Attributes...)

	_, t.span = t.config.tracer.Start(
		context.Background(),
		"reago.propagate",
		trace.WithAttributes(attrs...),
	)
}

func (t *passTracer) passEnd(stats reago.PassStats) {
	if t.span == nil {
		return
	}
	span := t.span
	t.span = nil

	span.SetAttributes(attribute.Int("reago.updates", stats.Updates))
	if stats.Updates < t.config.MinUpdates {
		span.SetAttributes(attribute.Bool("reago.trivial", true))
	}
	span.End()
}
