package audit

import (
	"context"
	"fmt"

	domainaudit "github.com/alanyang/hemotask/internal/domain/audit"
	portaudit "github.com/alanyang/hemotask/internal/port/audit"
)

const defaultLimit = 200

// Service exposes the audit trail read-only. Writes happen inside the task
// and technician services.
type Service struct {
	repo portaudit.Repository
}

func NewService(repo portaudit.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters domainaudit.ListFilters) ([]domainaudit.Entry, error) {
	if filters.Limit <= 0 || filters.Limit > defaultLimit {
		filters.Limit = defaultLimit
	}
	entries, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}
