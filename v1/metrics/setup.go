package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// statementBuckets covers sub-millisecond lookups up to multi-second scans.
var statementBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	registerer prometheus.Registerer
	namespace  string

	statementsTotal   *prometheus.CounterVec
	statementDuration *prometheus.HistogramVec
	rowsTotal         *prometheus.CounterVec
}

// NewMetrics sets up a dedicated registry whose metrics all carry the service label, the
// statement metrics, and an HTTP server exposing /metrics.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "accounts",
//	})
//	db, err := mariadb.NewMariaDB(cfg, mariadb.WithObserver(m))
//
// Access metrics at: http://localhost:9090/metrics
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// service="<cfg.ServiceName>" is added to everything registered below
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		registerer: wrappedRegistry,
		namespace:  cfg.Namespace,
	}

	m.statementsTotal = m.createCounterVec("db_statements_total", "Total number of executed SQL statements", []string{"component", "operation", "status"})
	m.statementDuration = m.createHistogramVec("db_statement_duration_seconds", "Duration of SQL statements in seconds", []string{"component", "operation"}, statementBuckets)
	m.rowsTotal = m.createCounterVec("db_rows_affected_total", "Total number of rows affected by SQL statements", []string{"component", "operation"})

	wrappedRegistry.MustRegister(
		m.statementsTotal,
		m.statementDuration,
		m.rowsTotal,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    address,
		Handler: mux,
	}
	return m
}
