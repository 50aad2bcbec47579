// Package tracing installs an OTLP trace exporter as the global tracer
// provider. Layout operations open spans through otel.Tracer; without an
// endpoint those spans go to the no-op provider.
package tracing

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/bnema/tabdock/internal/infrastructure/config"
)

// Provider owns the SDK tracer provider while tracing is enabled.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// Setup creates an OTLP/HTTP exporter for cfg.Endpoint and installs it
// globally. It returns nil when no endpoint is configured.
func Setup(ctx context.Context, cfg config.TracingConfig) (*Provider, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	return Install(sdktrace.WithBatcher(exporter), cfg.ServiceName), nil
}

// Install sets a tracer provider built around processor as the global one.
func Install(processor sdktrace.TracerProviderOption, serviceName string) *Provider {
	if serviceName == "" {
		serviceName = "tabdock"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	p := &Provider{
		provider: sdktrace.NewTracerProvider(processor, sdktrace.WithResource(res)),
	}
	otel.SetTracerProvider(p.provider)
	return p
}

// TracerProvider returns the installed SDK provider.
func (p *Provider) TracerProvider() oteltrace.TracerProvider {
	return p.provider
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return errors.Join(p.provider.ForceFlush(ctx), p.provider.Shutdown(ctx))
}
