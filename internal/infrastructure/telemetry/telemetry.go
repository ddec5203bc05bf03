// Package telemetry wires the OpenTelemetry trace provider.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Options selects the exporter and describes the service.
type Options struct {
	// Exporter is "none", "stdout" or "otlp".
	Exporter    string
	Endpoint    string
	ServiceName string
	Version     string
	// Output receives stdout spans. Defaults to os.Stdout.
	Output io.Writer
}

// Shutdown flushes and stops the provider.
type Shutdown func(context.Context) error

func newStdoutExporter(w io.Writer) (trace.SpanExporter, error) {
	return stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithoutTimestamps(),
	)
}

// newCollectorExporter sends spans to an OTLP/HTTP collector such as "localhost:4318".
func newCollectorExporter(ctx context.Context, endpoint string) (trace.SpanExporter, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("telemetry: otlp exporter needs an endpoint")
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(stripScheme(endpoint))}
	if !strings.HasPrefix(endpoint, "https://") {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

func stripScheme(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return strings.TrimPrefix(endpoint, "https://")
}

func newResource(opts Options) *resource.Resource {
	name := opts.ServiceName
	if name == "" {
		name = "taskboard"
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(name),
		semconv.ServiceVersion(version),
	)
}

// NewProvider builds a tracer provider for opts and installs it as the global
// provider together with the W3C trace-context propagator. With exporter
// "none" only the propagator is installed.
func NewProvider(ctx context.Context, opts Options) (Shutdown, error) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	var (
		exp trace.SpanExporter
		err error
	)
	switch strings.ToLower(opts.Exporter) {
	case "", "none":
		return func(context.Context) error { return nil }, nil
	case "stdout":
		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		exp, err = newStdoutExporter(out)
	case "otlp":
		exp, err = newCollectorExporter(ctx, opts.Endpoint)
	default:
		return nil, fmt.Errorf("telemetry: unknown exporter %q", opts.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("telemetry: create exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(newResource(opts)),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
