package task

import (
	"context"
	"time"

	domaintask "github.com/alanyang/hemotask/internal/domain/task"
)

// Repository manages task state in the database.
// Assign, Start and Complete are compare-and-swap on the current status and
// return domaintask errors when the guard does not hold.
type Repository interface {
	Create(ctx context.Context, t domaintask.Task) (domaintask.Task, error)
	GetByID(ctx context.Context, id string) (domaintask.Task, error)
	List(ctx context.Context, filters domaintask.ListFilters) ([]domaintask.Task, error)

	Assign(ctx context.Context, id, technicianID string) error
	Start(ctx context.Context, id, technicianID string, at time.Time) error
	Complete(ctx context.Context, id, technicianID string, at time.Time, durationSeconds int64) error
}
