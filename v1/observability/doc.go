// Package observability defines the hook through which data-access components report the
// operations they perform.
//
// Components accept an optional Observer and call ObserveOperation once per operation with
// an OperationContext describing it. A nil Observer disables reporting. The metrics package
// provides a Prometheus-backed implementation:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "auth"})
//	db.WithObserver(m)
package observability
