// Package telemetry wires the OpenTelemetry tracer provider. Build and
// render create spans under the "contextweave" tracer.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/contextweave/contextweave/config"
)

// Init sets up the tracing exporter based on config.
// Supported exporters: "stdout", "none" (default).
func Init(cfg *config.Config) {
	if cfg == nil || cfg.Tracing == nil || cfg.Tracing.Exporter != "stdout" {
		return
	}
	serviceName := cfg.Tracing.ServiceName
	if serviceName == "" {
		serviceName = "contextweave"
	}
	res, _ := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
}
