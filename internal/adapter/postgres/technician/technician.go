package technician

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pgdb "github.com/alanyang/hemotask/internal/adapter/postgres"
	domaintech "github.com/alanyang/hemotask/internal/domain/technician"
)

const columns = `id, code_name, skills, shift, active_tasks, created_at`

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

func (r *Repository) Create(ctx context.Context, t domaintech.Technician) (domaintech.Technician, error) {
	query := `
		INSERT INTO technicians (id, code_name, skills, shift, active_tasks, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING ` + columns

	created, err := scanOne(r.db(ctx).QueryRow(ctx, query,
		t.ID, t.CodeName, t.Skills, string(t.Shift), t.ActiveTasks, t.CreatedAt,
	))
	if err != nil {
		if pgdb.IsUniqueViolation(err) {
			return domaintech.Technician{}, domaintech.ErrAlreadyExists
		}
		return domaintech.Technician{}, fmt.Errorf("inserting technician: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (domaintech.Technician, error) {
	t, err := scanOne(r.db(ctx).QueryRow(ctx, `SELECT `+columns+` FROM technicians WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domaintech.Technician{}, fmt.Errorf("technician %s: %w", id, domaintech.ErrNotFound)
		}
		return domaintech.Technician{}, fmt.Errorf("querying technician: %w", err)
	}
	return t, nil
}

// List returns technicians in registration order. The selector breaks ties
// by position, so the order must be stable between calls.
func (r *Repository) List(ctx context.Context, filters domaintech.ListFilters) ([]domaintech.Technician, error) {
	query := `SELECT ` + columns + ` FROM technicians WHERE 1=1`

	args := []interface{}{}
	argIdx := 1

	if filters.Shift != nil {
		query += fmt.Sprintf(" AND shift = $%d", argIdx)
		args = append(args, string(*filters.Shift))
		argIdx++
	}
	if filters.Skill != nil {
		query += fmt.Sprintf(" AND $%d = ANY(skills)", argIdx)
		args = append(args, *filters.Skill)
		argIdx++
	}

	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing technicians: %w", err)
	}
	defer rows.Close()

	var techs []domaintech.Technician
	for rows.Next() {
		t, err := scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning technician row: %w", err)
		}
		techs = append(techs, t)
	}
	return techs, rows.Err()
}

func (r *Repository) UpdateShift(ctx context.Context, id string, shift domaintech.Shift) (domaintech.Technician, error) {
	t, err := scanOne(r.db(ctx).QueryRow(ctx,
		`UPDATE technicians SET shift = $1 WHERE id = $2 RETURNING `+columns, string(shift), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domaintech.Technician{}, fmt.Errorf("technician %s: %w", id, domaintech.ErrNotFound)
		}
		return domaintech.Technician{}, fmt.Errorf("updating shift: %w", err)
	}
	return t, nil
}

// AdjustActiveTasks applies delta, clamping at zero.
func (r *Repository) AdjustActiveTasks(ctx context.Context, id string, delta int) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE technicians SET active_tasks = GREATEST(active_tasks + $1, 0) WHERE id = $2`, delta, id)
	if err != nil {
		return fmt.Errorf("adjusting active tasks: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("technician %s: %w", id, domaintech.ErrNotFound)
	}
	return nil
}

func scanOne(row pgx.Row) (domaintech.Technician, error) {
	var t domaintech.Technician
	var shift string
	err := row.Scan(&t.ID, &t.CodeName, &t.Skills, &shift, &t.ActiveTasks, &t.CreatedAt)
	if err != nil {
		return domaintech.Technician{}, err
	}
	t.Shift = domaintech.Shift(shift)
	if t.Skills == nil {
		t.Skills = []string{}
	}
	return t, nil
}
