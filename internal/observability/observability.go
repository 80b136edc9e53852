package observability

import (
	"context"
	"errors"
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/config"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
)

// Runtime holds the telemetry exporters a process started. The zero value is
// usable and shuts down nothing.
type Runtime struct {
	flushTraces    func(context.Context) error
	stopProfiler   func() error
	debug          *debugServer
	shutdownWindow time.Duration
}

// Start brings up tracing, continuous profiling and the pprof listener in that
// order. Anything already started is torn down when a later step fails.
func Start(cfg config.Config, logger *logging.Logger, shutdownWindow time.Duration) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("observability")

	rt := &Runtime{shutdownWindow: shutdownWindow}

	flush, err := initTracing(cfg, logger)
	if err != nil {
		return nil, err
	}
	rt.flushTraces = flush

	stop, err := initProfiling(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}
	rt.stopProfiler = stop

	debug, err := startDebugServer(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}
	rt.debug = debug

	return rt, nil
}

// Shutdown stops everything Start brought up in reverse order and reports
// every failure, not only the first.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var errs []error
	if r.debug != nil {
		if err := r.debug.stop(ctx, r.shutdownWindow); err != nil {
			errs = append(errs, err)
		}
		r.debug = nil
	}
	if r.stopProfiler != nil {
		if err := r.stopProfiler(); err != nil {
			errs = append(errs, err)
		}
		r.stopProfiler = nil
	}
	if r.flushTraces != nil {
		if err := r.flushTraces(ctx); err != nil {
			errs = append(errs, err)
		}
		r.flushTraces = nil
	}

	return errors.Join(errs...)
}
