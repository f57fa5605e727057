package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyang/hemotask/internal/adapter/postgres/migrations"
)

// MinMaxConns is the smallest pool Connect will build. A dispatch critical
// section holds one connection for its whole transaction, so a pool of one
// would serialise every request behind it.
const MinMaxConns int32 = 4

// Options tunes the pool. Zero values keep pgx defaults.
type Options struct {
	MaxConns int32
	Migrate  bool
}

func applyOptions(config *pgxpool.Config, opts Options) {
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if config.MaxConns < MinMaxConns {
		config.MaxConns = MinMaxConns
	}
}

func Connect(ctx context.Context, connString string, opts Options) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	applyOptions(config, opts)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if opts.Migrate {
		if err := migrations.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return pool, nil
}

// IsUniqueViolation reports whether err is a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
