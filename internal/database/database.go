// Package database owns the PostgreSQL connection pool.
//
// It handles:
//   - building the pgxpool config from application config
//   - query tracing (New Relic via nrpgx5, SQL logging via pgx tracelog)
//   - slow query reporting
//   - applying the embedded schema migrations (see migrator.go)
package database

import (
	"context"
	"fmt"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"

	"github.com/deppfellow/userapi/internal/config"
	loggerPkg "github.com/deppfellow/userapi/internal/logger"
)

// Database wraps the pgx pool shared by every repository.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// DatabasePingTimeout bounds the startup ping.
const DatabasePingTimeout = 10 * time.Second

// New creates the pool, wires tracing and pings the database.
//
// Startup fails if the database is unreachable.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	if tracer := buildTracer(cfg, logger, loggerService); tracer != nil {
		pgxPoolConfig.ConnConfig.Tracer = tracer
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Int32("max_conns", pgxPoolConfig.MaxConns).
		Msg("connected to the database")

	return NewWithPool(pool, logger), nil
}

// NewWithPool wraps an already connected pool.
func NewWithPool(pool *pgxpool.Pool, logger *zerolog.Logger) *Database {
	return &Database{
		Pool: pool,
		log:  logger,
	}
}

// buildTracer assembles the query tracers for this environment.
//
//   - New Relic datastore segments when an application exists
//   - full SQL logging in the "local" environment
//   - slow query warnings whenever a threshold is configured
func buildTracer(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) pgx.QueryTracer {
	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerPkg.NewPgxLogger(globalLevel)),
			LogLevel: loggerPkg.GetPgxTraceLogLevel(globalLevel),
		})
	}

	if cfg.Observability != nil && cfg.Observability.Logging.SlowQueryThreshold > 0 {
		tracers = append(tracers, newSlowQueryTracer(logger, cfg.Observability.Logging.SlowQueryThreshold))
	}

	switch len(tracers) {
	case 0:
		return nil
	case 1:
		return tracers[0]
	default:
		return &multiTracer{tracers: tracers}
	}
}

// Close closes the pool. Safe to call once at shutdown.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
