package archive

import (
	"time"

	"github.com/billionvectors/asimplevectors-go/v1/observability"
)

// observeOperation reports a finished archive operation. The bucket is the
// resource and the snapshot date the sub-resource.
func (a *Archiver) observeOperation(operation, date string, duration time.Duration, err error, size int64) {
	if a == nil || a.observer == nil {
		return
	}

	a.observer.ObserveOperation(observability.OperationContext{
		Component:   "archive",
		Operation:   operation,
		Resource:    a.cfg.Bucket,
		SubResource: date,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}
