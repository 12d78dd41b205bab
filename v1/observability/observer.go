package observability

import "time"

// Observer receives one notification per completed operation. Implementations must be safe
// for concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a completed operation.
type OperationContext struct {
	// Component is the reporting package, for example "mariadb".
	Component string

	// Operation is the kind of work performed, for example "select" or "insert".
	Operation string

	// Resource is the primary object operated on, such as a table name.
	Resource string

	// SubResource carries secondary context, such as the filtered attribute.
	SubResource string

	Duration time.Duration

	// Error is nil on success.
	Error error

	// Size is the number of rows or bytes affected, when known.
	Size int64

	Metadata map[string]interface{}
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
