// Package tracer installs an OpenTelemetry tracer provider for applications
// using the asimplevectors client.
//
// Once NewClient has run, every request issued by an asimplevectors.Client
// is recorded as a client span and carries "traceparent" and "tracestate"
// headers, so server-side traces join the caller's trace. With
// Config.EnableExport spans are shipped over OTLP/HTTP.
//
// Basic usage:
//
//	tr, err := tracer.NewClient(tracer.Config{
//	    ServiceName:  "ingest-worker",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	    Endpoint:     "otel-collector:4318",
//	    Insecure:     true,
//	}, log)
//	if err != nil {
//	    return err
//	}
//	defer tr.Shutdown(ctx)
//
//	ctx, span := tr.StartSpan(ctx, "nightly-backup")
//	defer span.End()
//
// The package also ships FXModule for go.uber.org/fx applications.
package tracer
