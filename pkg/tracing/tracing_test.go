package tracing

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/serum-errors/go-serum"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, context.Context) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return sr, SetTracer(context.Background(), tp.Tracer("test"))
}

func loadSomething(ctx context.Context, fail error) (err error) {
	_, span := StartFn(ctx, "loadSomething")
	defer func() { EndWithStatus(span, err) }()
	return fail
}

func TestStartFnNamesSpanAfterCaller(t *testing.T) {
	sr, ctx := newRecorder()
	qt.Assert(t, loadSomething(ctx, nil), qt.IsNil)
	spans := sr.Ended()
	qt.Assert(t, spans, qt.HasLen, 1)
	qt.Assert(t, spans[0].Name(), qt.Equals, "tracing.loadSomething")
	qt.Assert(t, spans[0].Status().Code, qt.Equals, codes.Unset)
}

func TestEndWithStatusRecordsSerumCode(t *testing.T) {
	sr, ctx := newRecorder()
	err := serum.Error("cmdperms-error-test")
	qt.Assert(t, loadSomething(ctx, err), qt.Equals, err)
	spans := sr.Ended()
	qt.Assert(t, spans, qt.HasLen, 1)
	qt.Assert(t, spans[0].Status().Code, qt.Equals, codes.Error)
	attrs := spans[0].Attributes()
	qt.Assert(t, attrs, qt.HasLen, 1)
	qt.Assert(t, string(attrs[0].Key), qt.Equals, AttrKeyCmdpermsErrorCode)
	qt.Assert(t, attrs[0].Value.AsString(), qt.Equals, "cmdperms-error-test")
}

func TestEndWithStatusPlainError(t *testing.T) {
	sr, ctx := newRecorder()
	loadSomething(ctx, errors.New("boom"))
	attrs := sr.Ended()[0].Attributes()
	qt.Assert(t, attrs[0].Value.AsString(), qt.Equals, "unknown")
}

func TestTracerFromCtxWithoutTracer(t *testing.T) {
	ctx, span := Start(context.Background(), "noop")
	defer span.End()
	qt.Assert(t, ctx, qt.Not(qt.IsNil))
	qt.Assert(t, span.IsRecording(), qt.IsFalse)
}
