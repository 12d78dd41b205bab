package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/dbal/v1/observability"
)

// ObserveOperation records a completed statement. It implements observability.Observer,
// so a *Metrics can be passed to mariadb.WithObserver.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	status := "success"
	if op.Error != nil {
		status = "error"
	}

	m.statementsTotal.WithLabelValues(op.Component, op.Operation, status).Inc()
	m.statementDuration.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())
	if op.Size > 0 {
		m.rowsTotal.WithLabelValues(op.Component, op.Operation).Add(float64(op.Size))
	}
}

// IncrementStatements counts one statement with the given status.
func (m *Metrics) IncrementStatements(component, operation, status string) {
	m.statementsTotal.WithLabelValues(component, operation, status).Inc()
}

// RecordStatementDuration observes the time elapsed since start.
func (m *Metrics) RecordStatementDuration(start time.Time, component, operation string) {
	m.statementDuration.WithLabelValues(component, operation).Observe(time.Since(start).Seconds())
}

// CreateCounter registers a counter vector in the service registry.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := m.createCounterVec(name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram registers a histogram vector in the service registry.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := m.createHistogramVec(name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

// CreateGauge registers a gauge vector in the service registry.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := m.createGaugeVec(name, help, labels)
	m.registerer.MustRegister(gauge)
	return gauge
}

func (m *Metrics) createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func (m *Metrics) createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

func (m *Metrics) createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}
