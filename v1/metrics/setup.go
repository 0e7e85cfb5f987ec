package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns an isolated Prometheus registry, the client request metrics
// and the optional HTTP server exposing them.
//
// Metrics implements observability.Observer, so it can be handed directly to
// asimplevectors.Client.WithObserver.
type Metrics struct {
	// Server serves /metrics. Nil when Config.Address is empty.
	Server *http.Server

	// Registry holds every metric registered through this instance.
	Registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	transferredBytes *prometheus.CounterVec
}

// NewMetrics creates the registry and registers the client metrics:
//
//	<ns>_client_requests_total{component,operation,status}
//	<ns>_client_request_duration_seconds{component,operation}
//	<ns>_client_transferred_bytes_total{component,operation}
//
// All metrics carry a constant service="<cfg.ServiceName>" label.
func NewMetrics(cfg Config) *Metrics {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}

	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	m := &Metrics{Registry: registry}

	m.requestsTotal = createCounterVec(namespace, "client_requests_total",
		"Total number of API calls issued by the client, by outcome.",
		[]string{"component", "operation", "status"})
	m.requestDuration = createHistogramVec(namespace, "client_request_duration_seconds",
		"Latency of API calls issued by the client.",
		[]string{"component", "operation"}, prometheus.DefBuckets)
	m.transferredBytes = createCounterVec(namespace, "client_transferred_bytes_total",
		"Payload bytes moved by streaming operations such as snapshot transfer.",
		[]string{"component", "operation"})

	wrapped.MustRegister(m.requestsTotal, m.requestDuration, m.transferredBytes)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	if cfg.Address != "" {
		m.Server = &http.Server{
			Addr:    cfg.Address,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}
	}

	return m
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
}
