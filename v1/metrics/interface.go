package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/dbal/v1/observability"
)

// MetricsCollector is the contract for recording statement metrics and registering
// custom collectors. *Metrics implements it.
type MetricsCollector interface {
	observability.Observer

	// IncrementStatements counts one statement with the given outcome ("success" or "error").
	IncrementStatements(component, operation, status string)

	// RecordStatementDuration observes the time elapsed since start.
	RecordStatementDuration(start time.Time, component, operation string)

	CreateCounter(name, help string, labels []string) *prometheus.CounterVec
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
