/*
Package tracing wraps go.opentelemetry.io/otel/trace for setting and retrieving tracers in a context.Context.

Tracers travel in the context rather than in package globals,
so a command that was started without tracing configured simply gets no-op spans.
*/
package tracing
