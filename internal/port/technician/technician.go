package technician

import (
	"context"

	domaintech "github.com/alanyang/hemotask/internal/domain/technician"
)

// Repository manages technician records. AdjustActiveTasks applies a signed
// delta and never lets the count drop below zero.
type Repository interface {
	Create(ctx context.Context, t domaintech.Technician) (domaintech.Technician, error)
	GetByID(ctx context.Context, id string) (domaintech.Technician, error)
	List(ctx context.Context, filters domaintech.ListFilters) ([]domaintech.Technician, error)

	UpdateShift(ctx context.Context, id string, shift domaintech.Shift) (domaintech.Technician, error)
	AdjustActiveTasks(ctx context.Context, id string, delta int) error
}
