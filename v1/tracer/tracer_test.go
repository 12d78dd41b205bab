package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	traceapi "go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	gormmysql "gorm.io/driver/mysql"

	"github.com/Aleph-Alpha/dbal/v1/mariadb"
)

// newRecordedTracer returns a tracer whose finished spans end up in the recorder.
func newRecordedTracer(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()

	tr, err := NewClient(Config{ServiceName: "accounts", AppEnv: "test"}, nil)
	require.NoError(t, err)

	recorder := tracetest.NewSpanRecorder()
	tr.tracer.RegisterSpanProcessor(recorder)

	t.Cleanup(func() {
		_ = tr.Shutdown(context.Background())
	})
	return tr, recorder
}

func attributeMap(attrs []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

func TestStartSpan(t *testing.T) {
	tr, recorder := newRecordedTracer(t)

	ctx, parent := tr.StartSpan(context.Background(), "parent")
	_, child := tr.StartSpan(ctx, "child")
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "child", spans[0].Name())
	assert.Equal(t, parent.SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, parent.SpanContext().TraceID(), spans[0].SpanContext().TraceID())
}

func TestRecordErrorOnSpan(t *testing.T) {
	tr, recorder := newRecordedTracer(t)

	_, span := tr.StartSpan(context.Background(), "failing")
	tr.RecordErrorOnSpan(span, errors.New("boom"))
	span.End()

	_, ok := tr.StartSpan(context.Background(), "fine")
	tr.RecordErrorOnSpan(ok, nil)
	ok.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
	assert.Empty(t, spans[1].Events())
}

func TestSetAttributes(t *testing.T) {
	tr, recorder := newRecordedTracer(t)

	_, span := tr.StartSpan(context.Background(), "attrs")
	tr.SetAttributes(span, map[string]interface{}{
		"user.name": "alice",
		"retries":   3,
		"rows":      int64(12),
		"ratio":     0.5,
		"cached":    true,
		"tags":      []string{"a", "b"},
	})
	tr.SetAttributes(span, nil)
	span.End()

	attrs := attributeMap(recorder.Ended()[0].Attributes())
	assert.Equal(t, "alice", attrs["user.name"])
	assert.Equal(t, "3", attrs["retries"])
	assert.Equal(t, "12", attrs["rows"])
	assert.Equal(t, "0.5", attrs["ratio"])
	assert.Equal(t, "true", attrs["cached"])
	assert.Equal(t, "[a b]", attrs["tags"])
}

func TestCarrierRoundTrip(t *testing.T) {
	tr, _ := newRecordedTracer(t)

	ctx, span := tr.StartSpan(context.Background(), "outgoing")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	require.Contains(t, carrier, "traceparent")

	remote := traceapi.SpanContextFromContext(tr.SetCarrierOnContext(context.Background(), carrier))
	assert.True(t, remote.IsRemote())
	assert.Equal(t, span.SpanContext().TraceID(), remote.TraceID())
	assert.Equal(t, span.SpanContext().SpanID(), remote.SpanID())

	assert.Empty(t, tr.GetCarrier(context.Background()))
}

func TestStatementSpans(t *testing.T) {
	tr, recorder := newRecordedTracer(t)

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	db, err := mariadb.NewMariaDB(mariadb.NewConfig("localhost", "auth", "secret", "accounts"),
		mariadb.WithDialector(gormmysql.New(gormmysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true})),
		mariadb.WithTracerProvider(tr.Provider()),
	)
	require.NoError(t, err)

	ctx, parent := tr.StartSpan(context.Background(), "logout")

	mock.ExpectExec("DELETE FROM `sessions` WHERE `token` = 'abc'").WillReturnResult(sqlmock.NewResult(0, 1))
	affected, err := db.Delete(ctx, "sessions", "token", "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	mock.ExpectExec("DELETE FROM `sessions` WHERE `token` = 'def'").WillReturnError(errors.New("lock wait timeout"))
	_, err = db.Delete(ctx, "sessions", "token", "def")
	require.Error(t, err)

	parent.End()

	mock.ExpectClose()
	require.NoError(t, db.Close())
	require.NoError(t, mock.ExpectationsWereMet())

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	ok := spans[0]
	assert.Equal(t, "mariadb.delete", ok.Name())
	assert.Equal(t, traceapi.SpanKindClient, ok.SpanKind())
	assert.Equal(t, parent.SpanContext().SpanID(), ok.Parent().SpanID())
	attrs := attributeMap(ok.Attributes())
	assert.Equal(t, "mysql", attrs["db.system"])
	assert.Equal(t, "accounts", attrs["db.name"])
	assert.Equal(t, "sessions", attrs["db.sql.table"])
	assert.Equal(t, "1", attrs["db.rows_affected"])

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
}

func TestFXModule(t *testing.T) {
	var provider traceapi.TracerProvider
	var tr *Tracer

	app := fxtest.New(t,
		FXModule,
		fx.Provide(func() Config {
			return Config{ServiceName: "accounts", AppEnv: "test"}
		}),
		fx.Populate(&provider, &tr),
	)
	app.RequireStart()

	require.NotNil(t, tr)
	assert.Same(t, tr.tracer, provider)

	app.RequireStop()

	// spans started after shutdown are not recorded
	_, span := tr.StartSpan(context.Background(), "late")
	assert.False(t, span.IsRecording())
}
