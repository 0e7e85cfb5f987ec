package metrics

// Config controls the Prometheus registry and the HTTP server exposing it.
type Config struct {
	// Address is where the /metrics endpoint listens, e.g. ":9090".
	// An empty Address disables the HTTP server; the registry is still usable.
	Address string `yaml:"address" env:"ASV_METRICS_ADDRESS"`

	// ServiceName is added as a constant "service" label to every metric.
	ServiceName string `yaml:"service_name" env:"ASV_SERVICE_NAME"`

	// Namespace prefixes all client metric names. Default: "asimplevectors".
	Namespace string `yaml:"namespace" env:"ASV_METRICS_NAMESPACE"`

	// EnableDefaultCollectors registers the Go runtime, process and build
	// info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"ASV_METRICS_DEFAULT_COLLECTORS"`
}

const defaultNamespace = "asimplevectors"
