// Package otel wires OpenTelemetry tracing for board processes.
package otel

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	envEndpoint = "PERSONNEL_BOARD_OTEL_ENDPOINT"
	envEnabled  = "PERSONNEL_BOARD_OTEL_ENABLED"
)

// instrumentationName scopes spans emitted by board packages.
const instrumentationName = "github.com/louisbranch/personnel.board"

// Setup initialises OpenTelemetry tracing for serviceName.
//
// Tracing is opt-in: with PERSONNEL_BOARD_OTEL_ENDPOINT empty, or
// PERSONNEL_BOARD_OTEL_ENABLED set to "false", Setup registers nothing and
// returns a no-op shutdown. The returned shutdown flushes pending spans.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if strings.EqualFold(os.Getenv(envEnabled), "false") {
		return noop, nil
	}
	endpoint := strings.TrimSpace(os.Getenv(envEndpoint))
	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns the board tracer from the global provider. Before Setup
// registers a provider, spans are no-ops.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
