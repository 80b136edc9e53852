package httpapi

import (
	"context"
	"strings"

	"github.com/fortyozsucka/college-football-picks/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

// Only handler spans are recorded; middleware and response helpers would
// double the span count without adding signal.
var apiSpans = tracing.NewScope("college-football-picks/internal/interfaces/httpapi", shouldCreateHTTPAPISpan)

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiSpans.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
