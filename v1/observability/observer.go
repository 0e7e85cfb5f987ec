// Package observability defines the hook that std clients use to report
// the operations they perform.
//
// Clients call ObserveOperation once per finished operation. Implementations
// typically translate the OperationContext into metrics (see package metrics)
// or log lines. A nil Observer is valid everywhere and disables reporting.
package observability

import "time"

// Observer receives a notification for every completed client operation.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the client that performed the operation, e.g. "asimplevectors".
	Component string

	// Operation is the logical operation name, e.g. "space.create" or "snapshot.download".
	Operation string

	// Resource is the primary resource addressed, e.g. a space name or snapshot date.
	Resource string

	// SubResource gives additional context, e.g. a version id or a key.
	SubResource string

	// Duration is the wall time the operation took.
	Duration time.Duration

	// Error is the error returned to the caller, nil on success.
	Error error

	// Size is the number of payload bytes transferred, when known.
	Size int64

	// Metadata carries free-form attributes such as the HTTP status code.
	Metadata map[string]interface{}
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
