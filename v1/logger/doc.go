// Package logger provides the structured logger used across this module.
//
// It wraps Uber's zap with a small, map-based field API and optional
// OpenTelemetry correlation: when Config.EnableTracing is set, the
// *WithContext methods add trace_id and span_id from the span in ctx.
//
// # Direct usage
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Debug,
//		ServiceName:   "ingest-worker",
//		EnableTracing: true,
//	})
//	log.InfoWithContext(ctx, "upserted vectors", nil, map[string]interface{}{
//		"space": "docs",
//		"count": 128,
//	})
//
// # FX
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config { return logger.Config{Level: logger.Info} }),
//	)
//
// # Configuration
//
//	ASV_LOG_LEVEL=debug      # debug, info, warning, error
//	ASV_SERVICE_NAME=my-app  # value of the "service" field
//	ASV_LOG_TRACING=true     # add trace/span ids from context
//
// All methods are safe for concurrent use.
package logger
