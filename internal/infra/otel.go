package infra

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/fx"

	"github.com/dropstats/backend/internal/app/appconfig"
	"github.com/dropstats/backend/internal/pkg/observability"
)

// Tracing installs the global tracer provider when tracing is enabled.
// Without it the spans the verifiers start are recorded nowhere.
func Tracing(lc fx.Lifecycle, conf *appconfig.Config) error {
	if !conf.TracingEnabled {
		return nil
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint())
	if err != nil {
		return err
	}

	environment := "prod"
	if conf.DevMode {
		environment = "dev"
	}

	tracerProvider := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exporter),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(observability.ServiceName),
			attribute.String("environment", environment),
		)),
	)
	otel.SetTracerProvider(tracerProvider)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tracerProvider.Shutdown(ctx)
		},
	})

	log.Info().Str("evt.name", "infra.tracing").Msg("tracing enabled")
	return nil
}
