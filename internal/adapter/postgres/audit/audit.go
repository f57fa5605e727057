package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	pgdb "github.com/alanyang/hemotask/internal/adapter/postgres"
	domainaudit "github.com/alanyang/hemotask/internal/domain/audit"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// db joins the caller's transaction when ctx carries one.
func (r *Repository) db(ctx context.Context) pgdb.DBTX {
	return pgdb.Conn(ctx, r.pool)
}

func (r *Repository) Append(ctx context.Context, e domainaudit.Entry) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO audit_log (entity_id, action, performed_by, at) VALUES ($1,$2,$3,$4)`,
		e.EntityID, e.Action, e.PerformedBy, e.At,
	)
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}

// List returns entries newest first.
func (r *Repository) List(ctx context.Context, filters domainaudit.ListFilters) ([]domainaudit.Entry, error) {
	query := `SELECT id, entity_id, action, performed_by, at FROM audit_log WHERE 1=1`

	args := []interface{}{}
	argIdx := 1

	if filters.EntityID != nil {
		query += fmt.Sprintf(" AND entity_id = $%d", argIdx)
		args = append(args, *filters.EntityID)
		argIdx++
	}
	query += " ORDER BY at DESC, id DESC"
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filters.Limit)
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domainaudit.Entry
	for rows.Next() {
		var e domainaudit.Entry
		if err := rows.Scan(&e.ID, &e.EntityID, &e.Action, &e.PerformedBy, &e.At); err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
