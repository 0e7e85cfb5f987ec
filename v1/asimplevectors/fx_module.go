package asimplevectors

import (
	"context"

	"go.uber.org/fx"

	"github.com/billionvectors/asimplevectors-go/v1/logger"
	"github.com/billionvectors/asimplevectors-go/v1/observability"
)

// FXModule provides *Client built from a *Config in the graph. A
// logger.Logger and an observability.Observer are picked up when present,
// so logger.FXModule and metrics.FXModule compose with it directly.
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    asimplevectors.FXModule,
//	    fx.Provide(
//	        func() logger.Config { return logger.Config{Level: logger.Info} },
//	        func() metrics.Config { return metrics.Config{Address: ":9090"} },
//	        asimplevectors.NewConfigFromEnv,
//	    ),
//	)
var FXModule = fx.Module("asimplevectors",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterClientLifecycle),
)

// ClientParams groups the dependencies of NewClientWithDI.
type ClientParams struct {
	fx.In

	Config   *Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI builds a client and attaches the optional logger and
// observer.
func NewClientWithDI(params ClientParams) (*Client, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		client.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		client.WithObserver(params.Observer)
	}
	return client, nil
}

// RegisterClientLifecycle releases idle connections on stop.
func RegisterClientLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if client.logger != nil {
				client.logger.InfoWithContext(ctx, "asimplevectors client ready", nil, map[string]interface{}{
					"endpoint": client.Endpoint(),
				})
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if client.logger != nil {
				client.logger.InfoWithContext(ctx, "shutting down asimplevectors client", nil)
			}
			client.Close()
			return nil
		},
	})
}
