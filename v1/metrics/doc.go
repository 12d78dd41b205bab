// Package metrics provides Prometheus statement metrics for the data-access layer.
//
// A *Metrics implements observability.Observer. Passing it to mariadb.WithObserver (or
// installing FXModule next to mariadb.FXModule) counts every statement the client runs,
// by component, operation and outcome, and records how long it took and how many rows
// it touched.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: statement counters plus custom metric registration
//   - Metrics struct: concrete implementation backed by its own prometheus.Registry
//   - NewMetrics constructor: returns *Metrics
//   - FX module: provides *Metrics, MetricsCollector and observability.Observer
//
// Exposed series (all carry the service label):
//
//	db_statements_total{component,operation,status}
//	db_statement_duration_seconds{component,operation}
//	db_rows_affected_total{component,operation}
//
// # Direct Usage (Without FX)
//
//	import (
//		"github.com/Aleph-Alpha/dbal/v1/mariadb"
//		"github.com/Aleph-Alpha/dbal/v1/metrics"
//	)
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:     ":9090",
//		ServiceName: "accounts",
//	})
//	go m.Server.ListenAndServe()
//
//	db, err := mariadb.NewMariaDB(cfg, mariadb.WithObserver(m))
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,  // optional
//		metrics.FXModule, // provides the Observer picked up by mariadb.FXModule
//		mariadb.FXModule,
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{Address: ":9090", ServiceName: "accounts"}
//		}),
//	)
//
// # Configuration
//
//	METRICS__ADDRESS=:9090
//	METRICS__ENABLE_DEFAULT_COLLECTORS=true
//	METRICS__NAMESPACE=dbal
//	METRICS__SERVICE_NAME=accounts
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package metrics
