package tracer

// Config controls the tracer provider.
type Config struct {
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `yaml:"service_name" env:"ASV_TRACE_SERVICE_NAME"`

	// AppEnv is reported as deployment.environment.
	AppEnv string `yaml:"app_env" env:"ASV_TRACE_APP_ENV" envDefault:"development"`

	// EnableExport turns on the OTLP/HTTP exporter. When false spans are
	// created and propagated but never leave the process.
	EnableExport bool `yaml:"enable_export" env:"ASV_TRACE_EXPORT" envDefault:"false"`

	// Endpoint is the collector host:port. Empty uses the exporter default
	// or OTEL_EXPORTER_OTLP_ENDPOINT.
	Endpoint string `yaml:"endpoint" env:"ASV_TRACE_ENDPOINT"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" env:"ASV_TRACE_INSECURE" envDefault:"false"`
}
