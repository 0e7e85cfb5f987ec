package asimplevectors

import (
	"time"

	"github.com/billionvectors/asimplevectors-go/v1/observability"
)

// observeOperation notifies the observer about a finished request.
//
// Notes:
//   - resource: space name for space-scoped paths, otherwise the resource family
//   - subResource: HTTP method
func (c *Client) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "asimplevectors",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
