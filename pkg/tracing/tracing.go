package tracing

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"github.com/serum-errors/go-serum"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey struct{}

// TracerFromCtx returns the tracer set for the current context.
// If no tracer is currently set in ctx, a new no-op tracer will be returned.
func TracerFromCtx(ctx context.Context) trace.Tracer {
	tracer, ok := ctx.Value(ctxKey{}).(trace.Tracer)
	// SetTracer never stores nil.
	if !ok {
		return trace.NewNoopTracerProvider().Tracer("")
	}
	return tracer
}

// SetTracer returns a new context with the given tracer associated with it.
// Setting the tracer to nil will create a noop tracer and insert it into the context.
func SetTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	if tracer == nil {
		tracer = trace.NewNoopTracerProvider().Tracer("")
	}
	if existing, ok := ctx.Value(ctxKey{}).(trace.Tracer); ok {
		if existing == tracer {
			// Do not store same object twice.
			return ctx
		}
	}
	return context.WithValue(ctx, ctxKey{}, tracer)
}

// Start is a shortcut for retrieving the context tracer and calling Start.
// Start creates a span and a context.Context containing the newly-created span.
//
// If the current context does not contain a tracer then a new no-op tracer will be created for the new context.
// See go.opentelemetry.io/otel/trace.Tracer.Start for more information on the Start function.
func Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return TracerFromCtx(ctx).Start(ctx, spanName, opts...)
}

// StartFn is Start with the span named after the calling function,
// e.g. "dab.CommandsFromFile".
func StartFn(ctx context.Context, fallback string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Start(ctx, callerName(fallback), opts...)
}

// EndWithStatus ends the span, marking it failed if err is non-nil.
// Intended for use in a defer with a named error return.
func EndWithStatus(span trace.Span, err error) {
	if err != nil {
		setSpanError(span, err)
	}
	span.End()
}

// SetSpanError records err, and its serum code if it has one, on the span in ctx.
func SetSpanError(ctx context.Context, err error) {
	setSpanError(trace.SpanFromContext(ctx), err)
}

func setSpanError(span trace.Span, err error) {
	code := "unknown"
	var serr serum.ErrorInterface
	if errors.As(err, &serr) {
		code = serr.Code()
	}
	span.SetAttributes(attribute.String(AttrKeyCmdpermsErrorCode, code))
	span.SetStatus(codes.Error, err.Error())
}

func callerName(fallback string) string {
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		return fallback
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return fallback
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
