// Package telemetry sets up OpenTelemetry tracing for chat sessions.
package telemetry

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "urbanai"

// TelemetryConfig holds the configuration for telemetry
type TelemetryConfig struct {
	Enabled        bool
	Endpoint       string // OTLP/HTTP collector URL. Empty uses the exporter's default or OTEL_EXPORTER_OTLP_* variables
	ServiceVersion string
}

// Provider manages the lifetime of the process-wide tracer provider
type Provider struct {
	enabled        bool
	tracerProvider *sdktrace.TracerProvider
}

// NewProvider creates a new telemetry provider. When enabled, it is installed as the global tracer provider
func NewProvider(ctx context.Context, config TelemetryConfig) (*Provider, error) {
	if !config.Enabled {
		log.Printf("Telemetry disabled")
		return &Provider{enabled: false}, nil
	}

	var clientOpts []otlptracehttp.Option
	if config.Endpoint != "" {
		clientOpts = append(clientOpts, otlptracehttp.WithEndpointURL(config.Endpoint))
	}
	exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(clientOpts...))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", config.ServiceVersion),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	log.Printf("Telemetry enabled, exporting traces to %s", endpointDescription(config.Endpoint))

	return &Provider{
		enabled:        true,
		tracerProvider: tp,
	}, nil
}

func endpointDescription(endpoint string) string {
	if endpoint == "" {
		return "the default OTLP endpoint"
	}
	return endpoint
}

// Enabled reports whether traces are being exported
func (p *Provider) Enabled() bool {
	return p.enabled
}

// TracerProvider returns the tracer provider spans should be created with
func (p *Provider) TracerProvider() trace.TracerProvider {
	if !p.enabled {
		return otel.GetTracerProvider()
	}
	return p.tracerProvider
}

// Shutdown flushes pending spans and shuts down the telemetry provider
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.enabled {
		return nil
	}
	log.Printf("Shutting down telemetry provider")
	err := p.tracerProvider.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("failed to shut down tracer provider: %w", err)
	}
	return nil
}
