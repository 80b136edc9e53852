package app

import (
	"context"
	"fmt"
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/config"
	"github.com/fortyozsucka/college-football-picks/internal/platform/resilience"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	dbMaxOpenConns    = 10
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := PostgresDSN(cfg.DBURL, cfg.ServiceName, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(databaseName(dsn)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// dbReadiness pings the database behind a circuit breaker so a dead database
// fails readiness fast instead of stacking up probe timeouts.
type dbReadiness struct {
	db      pinger
	breaker *resilience.Breaker
}

func newDBReadiness(db pinger) *dbReadiness {
	return &dbReadiness{
		db:      db,
		breaker: resilience.NewBreaker(resilience.DefaultBreakerOptions()),
	}
}

func (r *dbReadiness) Ready(ctx context.Context) error {
	return r.breaker.Do(ctx, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		defer cancel()
		return r.db.PingContext(pingCtx)
	})
}
