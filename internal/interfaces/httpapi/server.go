package httpapi

import (
	"net/http"

	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
)

// RouterOptions carries the transport settings the router needs from config.
type RouterOptions struct {
	AdminToken              string
	CORSAllowedOrigins      []string
	CaptureRequestBody      bool
	RequestBodyCaptureBytes int
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicSeasonRoutes(mux, handler)
	registerAdminRoutes(mux, handler, opts.AdminToken)

	return RequestTracing(
		CaptureRequestBody(opts.CaptureRequestBody, opts.RequestBodyCaptureBytes,
			RequestLogging(logger, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux))),
		),
	)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
