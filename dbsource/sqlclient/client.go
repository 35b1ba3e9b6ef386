package sqlclient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // registers the "postgres" driver
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/confkit/database-sources-go/dbsource"
	"github.com/confkit/database-sources-go/dbsource/sqlclient/internal/adapters"
)

var ErrConnect = errors.New("failed to connect to database source")
var ErrUnsupportedDriver = errors.New("no client driver for database source")
var ErrMissingDatabaseName = errors.New("source has no database name")
var ErrNilSources = errors.New("nil sources store supplied")
var ErrInvalidPoolSetting = errors.New("invalid pool setting")

const (
	logMsgPostConnect = "executing post-connect statement"
	logAttrStatement  = "statement"
)

// OpenSQLDB resolves ref against sources and opens a database/sql
// handle for it, executing the source's post-connect statements before
// returning. Client failures are wrapped in ErrConnect and never
// retried; on any failure after opening, the handle is closed.
func OpenSQLDB(ctx context.Context, sources *dbsource.Sources, ref dbsource.SourceRef, options ...Option) (*sql.DB, error) {
	cfg, src, err := prepare(sources, ref, options)
	if err != nil {
		return nil, err
	}

	driverName, dsn, err := nativeDSN(src)
	if err != nil {
		return nil, err
	}

	statements, err := sources.PostConnectStatements(src)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.connectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	if err := cfg.runPostConnect(ctx, adapters.NewSQLAdapter(db), statements); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// OpenSQLX resolves ref against sources and opens a sqlx handle for
// it, executing the source's post-connect statements before returning.
func OpenSQLX(ctx context.Context, sources *dbsource.Sources, ref dbsource.SourceRef, options ...Option) (*sqlx.DB, error) {
	cfg, src, err := prepare(sources, ref, options)
	if err != nil {
		return nil, err
	}

	driverName, dsn, err := nativeDSN(src)
	if err != nil {
		return nil, err
	}

	statements, err := sources.PostConnectStatements(src)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(connectCtx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	if err := cfg.runPostConnect(ctx, adapters.NewSQLXAdapter(db), statements); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// OpenPGXPool resolves ref against sources and opens a pgx connection
// pool for it, executing the source's post-connect statements before
// returning. It only accepts PostgreSQL sources; pool sizing follows
// the With* pool options.
//
// Post-connect statements run once against the pool, not per
// connection; pools whose connections all need session setup should
// keep min and max connections equal or apply the statements through
// a pgx AfterConnect hook instead.
func OpenPGXPool(ctx context.Context, sources *dbsource.Sources, ref dbsource.SourceRef, options ...Option) (*pgxpool.Pool, error) {
	cfg, src, err := prepare(sources, ref, options)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(src.Driver(), "pg") {
		return nil, fmt.Errorf("%w: %q is not a PostgreSQL source", ErrUnsupportedDriver, src.Driver())
	}

	_, dsn, err := nativeDSN(src)
	if err != nil {
		return nil, err
	}

	statements, err := sources.PostConnectStatements(src)
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	poolConfig.MaxConns = cfg.maxConns
	poolConfig.MinConns = cfg.minConns
	poolConfig.MaxConnLifetime = cfg.maxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.maxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = cfg.connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	if err := cfg.runPostConnect(ctx, adapters.NewPGXAdapter(pool), statements); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// prepare evaluates the options and resolves the source reference,
// the shared front half of every Open constructor.
func prepare(sources *dbsource.Sources, ref dbsource.SourceRef, options []Option) (*config, dbsource.Source, error) {
	cfg, err := newConfig(options)
	if err != nil {
		return nil, nil, err
	}

	if sources == nil {
		return nil, nil, ErrNilSources
	}

	src, err := sources.Resolve(ref)
	if err != nil {
		return nil, nil, err
	}

	return cfg, src, nil
}

// runPostConnect executes each statement in order against the fresh
// handle, stopping at the first failure.
func (c *config) runPostConnect(ctx context.Context, client adapters.Client, statements []string) error {
	for _, statement := range statements {
		c.logDebug(logMsgPostConnect, logAttrStatement, statement)

		if err := client.Exec(ctx, statement); err != nil {
			return fmt.Errorf("%w: post-connect statement %q: %w", ErrConnect, statement, err)
		}
	}

	return nil
}
