//go:build integration

package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	pgdb "github.com/alanyang/hemotask/internal/adapter/postgres"
)

// SetupTestDB connects to TEST_DATABASE_URL, applies the embedded migrations
// and empties every table. The test is skipped when the variable is unset.
// Tests sharing a database must not run in parallel.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	return SetupTestPool(t, 0)
}

// SetupTestPool is SetupTestDB with an explicit pool size. Zero keeps the
// pgx default.
func SetupTestPool(t *testing.T, maxConns int32) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	pool, err := pgdb.Connect(context.Background(), url, pgdb.Options{MaxConns: maxConns, Migrate: true})
	require.NoError(t, err, "connect to test DB")
	truncate(t, pool)

	t.Cleanup(func() { pool.Close() })
	return pool
}

func truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE audit_log, tasks, technicians RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "truncate tables")
}
