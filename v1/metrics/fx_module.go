package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/billionvectors/asimplevectors-go/v1/logger"
	"github.com/billionvectors/asimplevectors-go/v1/observability"
)

// FXModule provides *Metrics and exposes it as the observability.Observer
// consumed by the client module. A metrics.Config must be provided.
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    asimplevectors.FXModule,
//	    fx.Provide(func() metrics.Config { return metrics.Config{Address: ":9090"} }),
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) observability.Observer { return m },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle runs the /metrics server for the lifetime of the
// application when an address is configured.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log logger.Logger) {
	if m.Server == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("prometheus metrics server stopped", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down prometheus metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
