// Package tracing starts child spans for in-process helpers. Spans are only
// opened under an existing recording parent, so filtered requests (health
// probes, CLI runs without a root span) stay span-free.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Scope names the instrumentation library and decides which span names are
// worth recording.
type Scope struct {
	name     string
	accept   func(spanName string) bool
	provider trace.TracerProvider
}

// NewScope returns a scope on the global tracer provider. A nil accept
// records every non-empty span name.
func NewScope(name string, accept func(spanName string) bool) Scope {
	return Scope{name: name, accept: accept}
}

// WithProvider pins the scope to tp instead of the global provider.
func (s Scope) WithProvider(tp trace.TracerProvider) Scope {
	s.provider = tp
	return s
}

func (s Scope) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if strings.TrimSpace(spanName) == "" {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if s.accept != nil && !s.accept(spanName) {
		return ctx, noopSpan
	}

	provider := s.provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return provider.Tracer(s.name).Start(ctx, spanName, opts...)
}

// Fail marks span as failed with err. A nil err is ignored.
func Fail(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
