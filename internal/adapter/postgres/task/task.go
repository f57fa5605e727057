package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pgdb "github.com/alanyang/hemotask/internal/adapter/postgres"
	domaintask "github.com/alanyang/hemotask/internal/domain/task"
)

const columns = `id, task_type, required_skill, priority, status, assigned_to,
	created_at, started_at, completed_at, deadline, duration_seconds`

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

func (r *Repository) Create(ctx context.Context, t domaintask.Task) (domaintask.Task, error) {
	query := `
		INSERT INTO tasks (id, task_type, required_skill, priority, status, assigned_to,
			created_at, started_at, completed_at, deadline, duration_seconds)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING ` + columns

	created, err := scanOne(r.db(ctx).QueryRow(ctx, query,
		t.ID, t.TaskType, t.RequiredSkill, string(t.Priority), string(t.Status), t.AssignedTo,
		t.CreatedAt, t.StartedAt, t.CompletedAt, t.Deadline, t.DurationSeconds,
	))
	if err != nil {
		return domaintask.Task{}, fmt.Errorf("inserting task: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (domaintask.Task, error) {
	t, err := scanOne(r.db(ctx).QueryRow(ctx, `SELECT `+columns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domaintask.Task{}, fmt.Errorf("task %s: %w", id, domaintask.ErrNotFound)
		}
		return domaintask.Task{}, fmt.Errorf("querying task: %w", err)
	}
	return t, nil
}

func (r *Repository) List(ctx context.Context, filters domaintask.ListFilters) ([]domaintask.Task, error) {
	query := `SELECT ` + columns + ` FROM tasks WHERE 1=1`

	args := []interface{}{}
	argIdx := 1

	if filters.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*filters.Status))
		argIdx++
	}
	if filters.Priority != nil {
		query += fmt.Sprintf(" AND priority = $%d", argIdx)
		args = append(args, string(*filters.Priority))
		argIdx++
	}
	if filters.AssignedTo != nil {
		query += fmt.Sprintf(" AND assigned_to = $%d", argIdx)
		args = append(args, *filters.AssignedTo)
		argIdx++
	}

	if filters.OldestFirst {
		query += " ORDER BY created_at ASC, id ASC"
	} else {
		query += " ORDER BY created_at DESC, id ASC"
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domaintask.Task
	for rows.Next() {
		t, err := scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *Repository) Assign(ctx context.Context, id, technicianID string) error {
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE tasks SET status = $1, assigned_to = $2
		WHERE id = $3 AND status = $4`,
		string(domaintask.StatusAssigned), technicianID, id, string(domaintask.StatusPending),
	)
	if err != nil {
		return fmt.Errorf("assigning task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, id)
	}
	return nil
}

func (r *Repository) Start(ctx context.Context, id, technicianID string, at time.Time) error {
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE tasks SET status = $1, started_at = $2
		WHERE id = $3 AND status = $4 AND assigned_to = $5`,
		string(domaintask.StatusInProgress), at, id, string(domaintask.StatusAssigned), technicianID,
	)
	if err != nil {
		return fmt.Errorf("starting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, id)
	}
	return nil
}

func (r *Repository) Complete(ctx context.Context, id, technicianID string, at time.Time, durationSeconds int64) error {
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE tasks SET status = $1, completed_at = $2, duration_seconds = $3
		WHERE id = $4 AND status = $5 AND assigned_to = $6`,
		string(domaintask.StatusCompleted), at, durationSeconds, id, string(domaintask.StatusInProgress), technicianID,
	)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, id)
	}
	return nil
}

// missOrConflict explains a compare-and-swap that touched no rows.
func (r *Repository) missOrConflict(ctx context.Context, id string) error {
	var exists bool
	if err := r.db(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("checking task existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("task %s: %w", id, domaintask.ErrNotFound)
	}
	return fmt.Errorf("task %s: %w", id, domaintask.ErrConflict)
}

func scanOne(row pgx.Row) (domaintask.Task, error) {
	var t domaintask.Task
	var priority, status string
	err := row.Scan(
		&t.ID, &t.TaskType, &t.RequiredSkill, &priority, &status, &t.AssignedTo,
		&t.CreatedAt, &t.StartedAt, &t.CompletedAt, &t.Deadline, &t.DurationSeconds,
	)
	if err != nil {
		return domaintask.Task{}, err
	}
	t.Priority = domaintask.Priority(priority)
	t.Status = domaintask.Status(status)
	return t, nil
}
