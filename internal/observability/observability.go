// Package observability starts the process-wide telemetry of the match statistics service:
// OpenTelemetry export to Uptrace, continuous profiling with Pyroscope and a local pprof listener.
package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/riskibarqy/match-stats/internal/config"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
)

// Runtime owns the telemetry components that were switched on by config. A zero
// Runtime is valid and shuts down as a no-op.
type Runtime struct {
	tracing  func(context.Context) error
	profiler func() error
	debug    *http.Server
	logger   *logging.Logger
}

// Start brings up every enabled component. When one fails, the ones already running are
// stopped before the error is returned.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger}

	tracing, err := startTracing(cfg, logger)
	if err != nil {
		return nil, err
	}
	rt.tracing = tracing

	profiler, err := startProfiler(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(ctx)
		return nil, err
	}
	rt.profiler = profiler

	debug, err := startDebugServer(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(ctx)
		return nil, err
	}
	rt.debug = debug

	return rt, nil
}

// Shutdown stops the debug listener first and flushes traces last, so spans recorded
// while draining are still exported.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var errs []error
	if r.debug != nil {
		if err := r.debug.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		} else {
			r.logger.Info("pprof server stopped")
		}
		r.debug = nil
	}
	if r.profiler != nil {
		if err := r.profiler(); err != nil {
			errs = append(errs, err)
		}
		r.profiler = nil
	}
	if r.tracing != nil {
		if err := r.tracing(ctx); err != nil {
			errs = append(errs, err)
		}
		r.tracing = nil
	}
	return errors.Join(errs...)
}
