package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	traceapi "go.opentelemetry.io/otel/trace"

	"github.com/billionvectors/asimplevectors-go/v1/logger"
)

const defaultServiceName = "asimplevectors-client"

// Tracer owns the OpenTelemetry tracer provider installed as the global
// provider. The asimplevectors transport creates its client spans through
// the global provider, so installing a Tracer is all that is needed to get
// one span per HTTP request.
type Tracer struct {
	provider *trace.TracerProvider
	logger   logger.Logger
}

// NewClient builds the tracer provider, installs it together with the W3C
// trace-context and baggage propagators as the otel globals and returns it.
//
// When cfg.EnableExport is set spans are batched to an OTLP/HTTP collector.
//
// Example:
//
//	tr, err := tracer.NewClient(tracer.Config{ServiceName: "indexer", EnableExport: true}, log)
//	if err != nil {
//	    return err
//	}
//	defer tr.Shutdown(context.Background())
func NewClient(cfg Config, log logger.Logger) (*Tracer, error) {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		var clientOpts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			clientOpts = append(clientOpts, otlptracehttp.WithEndpoint(cfg.Endpoint))
		}
		if cfg.Insecure {
			clientOpts = append(clientOpts, otlptracehttp.WithInsecure())
		}

		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(clientOpts...))
		if err != nil {
			return nil, fmt.Errorf("cannot initiate trace exporter: %w", err)
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	return newTracer(cfg, log, options...), nil
}

func newTracer(cfg Config, log logger.Logger, options ...trace.TracerProviderOption) *Tracer {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if log != nil {
		log.Info("tracer initialised", nil, map[string]interface{}{
			"service":  serviceName,
			"exporter": cfg.EnableExport,
		})
	}

	return &Tracer{provider: tp, logger: log}
}

// Provider returns the underlying trace provider for callers that need a
// named tracer.
func (t *Tracer) Provider() traceapi.TracerProvider {
	return t.provider
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
