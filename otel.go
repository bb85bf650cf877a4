package menuplanner

import (
	"context"
	"errors"

	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	TracerNameCLI    = "menuplanner-cli"
	TracerNameLambda = "menuplanner-lambda"
)

// OtelConfig is a configuration struct for the OpenTelemetry providers.
// Exporters are only created when Endpoint is set.
type OtelConfig struct {
	Endpoint       string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Headers        string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceVersion string `env:"OTEL_SERVICE_VERSION,default=0.1.0"`
	ServiceName    string `env:"OTEL_SERVICE_NAME,default=menu-planner"`
	DeployEnv      string `env:"OTEL_DEPLOY_ENV,default=development"`
}

// Exporting reports whether an OTLP endpoint is configured.
func (c OtelConfig) Exporting() bool {
	return c.Endpoint != ""
}

type otelShutdown func(ctx context.Context) error

// InitOtel initializes the OpenTelemetry SDK from OTEL_* environment variables
// and returns a TracerProvider, MeterProvider, and shutdown function.
func InitOtel(ctx context.Context) (*sdktrace.TracerProvider, *metric.MeterProvider, otelShutdown, error) {
	var cfg OtelConfig
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, nil, nil, err
	}
	return NewOtelProviders(ctx, cfg)
}

// NewOtelProviders builds providers for cfg. Without an endpoint the providers
// record nothing remotely, which keeps local runs free of a collector.
func NewOtelProviders(ctx context.Context, cfg OtelConfig) (*sdktrace.TracerProvider, *metric.MeterProvider, otelShutdown, error) {
	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
		attribute.String("deployment.environment", cfg.DeployEnv),
	)

	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	meterOpts := []metric.Option{metric.WithResource(res)}

	if cfg.Exporting() {
		// The gRPC exporters read endpoint and headers from the same OTEL_* variables.
		traceExporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient())
		if err != nil {
			return nil, nil, nil, err
		}
		metricExporter, err := otlpmetricgrpc.New(ctx)
		if err != nil {
			return nil, nil, nil, err
		}
		traceOpts = append(traceOpts, sdktrace.WithBatcher(traceExporter))
		meterOpts = append(meterOpts, metric.WithReader(metric.NewPeriodicReader(metricExporter)))
	}

	tracerProvider := sdktrace.NewTracerProvider(traceOpts...)
	meterProvider := metric.NewMeterProvider(meterOpts...)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		err := errors.Join(
			tracerProvider.Shutdown(ctx),
			meterProvider.Shutdown(ctx),
		)

		if err != nil && err.Error() == "gRPC exporter is shutdown" {
			return nil
		}

		return err
	}

	return tracerProvider, meterProvider, shutdown, nil
}
