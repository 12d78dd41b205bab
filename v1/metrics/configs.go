package metrics

// DefaultMetricsAddress is the listen address used when Config.Address is empty.
const DefaultMetricsAddress = ":9090"

// Config configures the metrics registry and the /metrics server.
type Config struct {
	// Address is the listen address of the /metrics endpoint.
	Address string `koanf:"address"`

	// EnableDefaultCollectors registers the Go runtime, process and build info collectors.
	EnableDefaultCollectors bool `koanf:"enable_default_collectors"`

	// Namespace prefixes every metric name created by this package.
	Namespace string `koanf:"namespace"`

	// ServiceName is attached to every metric as the service label.
	ServiceName string `koanf:"service_name"`
}
