package tracer

// Config defines the tracer settings.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `koanf:"service_name"`

	// AppEnv is recorded as the deployment environment.
	AppEnv string `koanf:"app_env"`

	// EnableExport sends spans to an OTLP/HTTP collector. The endpoint is taken from the
	// standard OTEL_EXPORTER_OTLP_ENDPOINT / OTEL_EXPORTER_OTLP_TRACES_ENDPOINT variables
	// unless Endpoint is set.
	EnableExport bool `koanf:"enable_export"`

	// Endpoint is the host:port of the collector, e.g. "otel-collector:4318".
	Endpoint string `koanf:"endpoint"`

	// Insecure disables TLS towards the collector.
	Insecure bool `koanf:"insecure"`
}
