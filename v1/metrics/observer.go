package metrics

import (
	"errors"

	"github.com/billionvectors/asimplevectors-go/v1/observability"
)

// statusLabel classifies an error for the "status" label without importing
// the client package. Errors exposing HTTPStatus() report their HTTP class.
func statusLabel(err error) string {
	if err == nil {
		return "success"
	}
	var coded interface{ HTTPStatus() int }
	if errors.As(err, &coded) {
		switch code := coded.HTTPStatus(); {
		case code == 401 || code == 403:
			return "unauthorized"
		case code == 404:
			return "not_found"
		case code >= 500:
			return "server_error"
		default:
			return "client_error"
		}
	}
	return "error"
}

// ObserveOperation records one finished operation.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(ctx.Component, ctx.Operation, statusLabel(ctx.Error)).Inc()
	m.requestDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
	if ctx.Size > 0 {
		m.transferredBytes.WithLabelValues(ctx.Component, ctx.Operation).Add(float64(ctx.Size))
	}
}

var _ observability.Observer = (*Metrics)(nil)
