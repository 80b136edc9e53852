package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantHeaders bool
	}{
		{name: "configured origin", allowed: []string{"https://picks.example.com"}, method: http.MethodGet, origin: "https://picks.example.com", wantStatus: http.StatusOK, wantOrigin: "https://picks.example.com", wantHeaders: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://picks.example.com", wantStatus: http.StatusNoContent, wantOrigin: "*", wantHeaders: true},
		{name: "unconfigured origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodGet, origin: "https://other.example.com", wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/v1/seasons/2025/leaderboard", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tc.allowed, okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tc.wantHeaders {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), adminTokenHeader)
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "} {
		assert.False(t, shouldTraceRequest(path), path)
	}
	for _, path := range []string{"/v1/admin/scoring/settle", "/v1/seasons/2025/leaderboard", "/"} {
		assert.True(t, shouldTraceRequest(path), path)
	}
}

func TestRequireAdminToken_TrimsHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/scoring/audit", nil)
	req.Header.Set(adminTokenHeader, "  secret ")
	rec := httptest.NewRecorder()

	RequireAdminToken("secret", okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogging_RecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := logging.FromZap(zap.New(core))

	handler := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/seasons/2025/games", nil))

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.Equal(t, "/v1/seasons/2025/games", fields["path"])
}

func TestCaptureRequestBody(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("test")

	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seen = string(body)
	})

	payload := `{"dry_run":true,"season":2025}`
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/scoring/settle", strings.NewReader(payload))
	ctx, span := tracer.Start(req.Context(), "request")
	CaptureRequestBody(true, 8, next).ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
	span.End()

	assert.Equal(t, payload, seen, "handler must still see the whole body")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, payload[:8], attrs["http.request.body"])
	assert.Equal(t, true, attrs["http.request.body.truncated"])
}

func TestCaptureRequestBody_DisabledPassesThrough(t *testing.T) {
	next := okHandler()
	assert.NotNil(t, CaptureRequestBody(false, 1024, next))

	rec := httptest.NewRecorder()
	CaptureRequestBody(true, 0, next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")))
	assert.Equal(t, http.StatusOK, rec.Code)
}
