package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/billionvectors/asimplevectors-go/v1/logger"
)

func newRecordingTracer(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tr := newTracer(Config{ServiceName: "tracer-test", AppEnv: "test"}, logger.NewFromZap(zap.NewNop(), false), trace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })
	return tr, sr
}

func TestStartSpanRecordsErrorAndAttributes(t *testing.T) {
	tr, sr := newRecordingTracer(t)

	_, span := tr.StartSpan(context.Background(), "archive-snapshot")
	tr.SetAttributes(span, map[string]interface{}{
		"snapshot.date": "20240115",
		"bytes":         int64(42),
		"retry":         false,
		"ratio":         0.5,
		"other":         []int{1},
	})
	tr.RecordErrorOnSpan(span, errors.New("bucket missing"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	assert.Equal(t, "archive-snapshot", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "bucket missing", got.Status().Description)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range got.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "20240115", attrs["snapshot.date"].AsString())
	assert.Equal(t, int64(42), attrs["bytes"].AsInt64())
	assert.False(t, attrs["retry"].AsBool())
	assert.Equal(t, 0.5, attrs["ratio"].AsFloat64())
	assert.Equal(t, "[1]", attrs["other"].AsString())
}

func TestCarrierRoundTrip(t *testing.T) {
	tr, _ := newRecordingTracer(t)

	ctx, span := tr.StartSpan(context.Background(), "parent")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	require.Contains(t, carrier, "traceparent")

	restored := tr.SetCarrierOnContext(context.Background(), carrier)
	_, child := tr.StartSpan(restored, "child")
	defer child.End()

	assert.Equal(t, span.SpanContext().TraceID(), child.SpanContext().TraceID())
}

func TestFXModuleShutsDownProvider(t *testing.T) {
	var tr *Tracer
	app := fxtest.New(t,
		fx.Provide(
			func() Config { return Config{ServiceName: "fx-test"} },
			func() logger.Logger { return logger.NewFromZap(zap.NewNop(), false) },
		),
		FXModule,
		fx.Populate(&tr),
	)
	app.RequireStart()
	require.NotNil(t, tr)
	app.RequireStop()
}
