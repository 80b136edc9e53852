package observability

import (
	"context"
	"strings"

	"github.com/fortyozsucka/college-football-picks/internal/config"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

func noopFlush(context.Context) error { return nil }

// tracingAttributes tags every exported span with the storage backend so a
// slow settle can be told apart between the memory and postgres drivers.
func tracingAttributes(cfg config.Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("scoring.storage_driver", cfg.StorageDriver),
	}
	if cfg.CacheEnabled {
		attrs = append(attrs, attribute.Int64("scoring.cache_ttl_ms", cfg.CacheTTL.Milliseconds()))
	}
	return attrs
}

func initTracing(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if !cfg.UptraceEnabled {
		logger.Info("tracing off", "reason", "UPTRACE_ENABLED=false")
		return noopFlush, nil
	}
	dsn := strings.TrimSpace(cfg.UptraceDSN)
	if dsn == "" {
		logger.Warn("tracing off", "reason", "UPTRACE_DSN empty")
		return noopFlush, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(dsn),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(tracingAttributes(cfg)...),
	)

	logger.Info("tracing on",
		"service_version", cfg.ServiceVersion,
		"storage", cfg.StorageDriver,
	)
	return uptrace.Shutdown, nil
}
