package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/config"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
)

// debugServer exposes net/http/pprof on its own listener, never on the admin
// API port.
type debugServer struct {
	srv    *http.Server
	addr   string
	logger *logging.Logger
}

func pprofHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("POST /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	return mux
}

// startDebugServer binds before returning so a taken port fails Start instead
// of surfacing later in a log line.
func startDebugServer(cfg config.Config, logger *logging.Logger) (*debugServer, error) {
	if !cfg.PprofEnabled {
		logger.Info("pprof off", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	listener, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, err
	}

	ds := &debugServer{
		srv: &http.Server{
			Handler:           pprofHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr:   listener.Addr().String(),
		logger: logger,
	}
	go func() {
		if err := ds.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "addr", ds.addr, "error", err)
		}
	}()

	logger.Info("pprof on", "addr", ds.addr)
	return ds, nil
}

func (d *debugServer) stop(ctx context.Context, window time.Duration) error {
	if d == nil {
		return nil
	}
	if window > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, window)
		defer cancel()
	}
	if err := d.srv.Shutdown(ctx); err != nil {
		return err
	}
	d.logger.Info("pprof stopped", "addr", d.addr)
	return nil
}
