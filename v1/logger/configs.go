package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config configures the logger.
type Config struct {
	// Level is one of debug, info, warning or error. Anything else means info.
	Level string `koanf:"level"`

	// EnableTracing adds trace_id and span_id from the context to entries written by the
	// *WithContext methods.
	EnableTracing bool `koanf:"enable_tracing"`

	// ServiceName is attached to every entry as the service field.
	ServiceName string `koanf:"service_name"`

	// OutputPaths defaults to stderr.
	OutputPaths []string `koanf:"output_paths"`
}
