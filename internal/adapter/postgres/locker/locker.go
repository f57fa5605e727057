package locker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	pgdb "github.com/alanyang/hemotask/internal/adapter/postgres"
)

// Locker implements port/locker.AdvisoryLocker with transaction-scoped
// advisory locks. fn runs inside the transaction that holds the lock, so the
// critical section uses exactly one pooled connection and its writes commit
// or roll back together.
type Locker struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Locker {
	return &Locker{pool: pool}
}

func (l *Locker) WithLock(ctx context.Context, key int64, fn func(ctx context.Context) error) error {
	// Nested call: take the lock on the caller's transaction. Xact locks are
	// re-entrant within one transaction.
	if tx, ok := pgdb.TxFrom(ctx); ok {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
			return fmt.Errorf("acquire advisory lock: %w", err)
		}
		return fn(ctx)
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin advisory lock transaction: %w", err)
	}
	// Background ctx so the rollback still runs when ctx was cancelled inside fn.
	defer tx.Rollback(context.Background()) //nolint:errcheck

	waitStart := time.Now()
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
		return fmt.Errorf("acquire advisory lock: %w", err)
	}
	if waited := time.Since(waitStart); waited > time.Second {
		slog.WarnContext(ctx, "slow advisory lock acquisition", "key", key, "waited", waited)
	}

	if err := fn(pgdb.WithTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit locked transaction: %w", err)
	}
	return nil
}
