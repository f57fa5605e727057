package audit

import (
	"context"

	domainaudit "github.com/alanyang/hemotask/internal/domain/audit"
)

// Repository is the append-only audit trail.
type Repository interface {
	Append(ctx context.Context, e domainaudit.Entry) error
	List(ctx context.Context, filters domainaudit.ListFilters) ([]domainaudit.Entry, error)
}
