// Package telemetry provides OpenTelemetry tracing, exported over OTLP
// HTTP when an endpoint is configured.
package telemetry

import (
	"context"
	"os"
	"runtime"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "gridcrawl"
	serviceVersion = "0.1.0"
)

// EnvEndpoint is the standard OTLP endpoint variable. Tracing is exported
// only when it is set.
const EnvEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"

// enabled is set while an exporting provider is installed.
var enabled atomic.Bool

// Setup initializes OpenTelemetry with OTLP HTTP exporter.
// It reads configuration from standard OTEL_* environment variables:
//   - OTEL_EXPORTER_OTLP_ENDPOINT: collector endpoint, e.g. https://api.honeycomb.io
//   - OTEL_EXPORTER_OTLP_HEADERS: headers such as x-honeycomb-team=<api-key>
//
// Without an endpoint the global no-op provider is kept and spans are
// dropped. Returns a shutdown function that should be called on application
// exit. Until Setup succeeds, Tracer hands out no-op tracers.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	if os.Getenv(EnvEndpoint) == "" {
		return func(context.Context) error { return nil }, nil
	}

	// Create OTLP HTTP exporter - automatically uses OTEL_* env vars
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// Build resource with service information
	// We create our own resource without merging with Default() to avoid schema URL conflicts
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("telemetry.sdk.name", "opentelemetry"),
			attribute.String("host.name", getHostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	// Create trace provider with batch span processor
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// Register as global provider
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	enabled.Store(true)

	return func(ctx context.Context) error {
		enabled.Store(false)
		return tp.Shutdown(ctx)
	}, nil
}

// Tracer returns a named tracer for the given component.
// Use this to create spans within different parts of the application.
func Tracer(name string) trace.Tracer {
	if !enabled.Load() {
		return NoopTracer()
	}
	return otel.GetTracerProvider().Tracer("gridcrawl/" + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("gridcrawl/noop")
}

// getHostname returns the system hostname, or "unknown" if it cannot be determined.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
