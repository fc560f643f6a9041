// Package telemetry installs the process-wide OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporters understood by Setup.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// Config selects the exporter. An empty exporter disables tracing.
type Config struct {
	Exporter    string `toml:"exporter"`
	ServiceName string `toml:"service_name"`
}

// Shutdown flushes and stops the provider installed by Setup.
type Shutdown func(context.Context) error

// Setup builds a tracer provider for cfg, installs it globally and returns
// it along with its shutdown func. Spans go to w (stdout when nil) for the
// stdout exporter; any other exporter installs a no-op provider.
func Setup(ctx context.Context, cfg Config, w io.Writer) (trace.TracerProvider, Shutdown, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Exporter)) {
	case ExporterStdout:
	case "", ExporterNone:
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, func(context.Context) error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("telemetry: unknown exporter %q", cfg.Exporter)
	}

	if w == nil {
		w = os.Stdout
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: stdout exporter: %w", err)
	}
	name := cfg.ServiceName
	if name == "" {
		name = "orggraph"
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceNameKey.String(name)))
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, tp.Shutdown, nil
}
