package archive

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
	"github.com/billionvectors/asimplevectors-go/v1/logger"
	"github.com/billionvectors/asimplevectors-go/v1/observability"
)

// FXModule provides *Archiver on top of the *asimplevectors.Client in the
// graph and makes sure the bucket exists on start.
var FXModule = fx.Module("archive",
	fx.Provide(
		NewArchiverWithDI,
	),
	fx.Invoke(RegisterArchiverLifecycle),
)

// ArchiverParams groups the dependencies of NewArchiverWithDI.
type ArchiverParams struct {
	fx.In

	Config   Config
	Client   *asimplevectors.Client
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewArchiverWithDI builds an Archiver reading snapshots through
// params.Client.
func NewArchiverWithDI(params ArchiverParams) (*Archiver, error) {
	a, err := NewArchiver(params.Config, params.Client.Snapshots)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		a.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		a.WithObserver(params.Observer)
	}
	return a, nil
}

// RegisterArchiverLifecycle creates the bucket on start.
func RegisterArchiverLifecycle(lc fx.Lifecycle, a *Archiver) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := a.EnsureBucket(ctx); err != nil {
				return err
			}
			a.logInfo(ctx, "snapshot archive ready", map[string]interface{}{"bucket": a.cfg.Bucket})
			return nil
		},
	})
}
