package technician

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainaudit "github.com/alanyang/hemotask/internal/domain/audit"
	"github.com/alanyang/hemotask/internal/domain/event"
	domaintech "github.com/alanyang/hemotask/internal/domain/technician"
	portaudit "github.com/alanyang/hemotask/internal/port/audit"
	portbus "github.com/alanyang/hemotask/internal/port/eventbus"
	porttech "github.com/alanyang/hemotask/internal/port/technician"
)

var ErrInvalidShift = errors.New("invalid shift")

// Service manages the technician roster: registration and shifts.
// Workload counters are owned by the task service.
type Service struct {
	repo  porttech.Repository
	audit portaudit.Repository
	bus   portbus.EventBus
}

func NewService(repo porttech.Repository, audit portaudit.Repository, bus portbus.EventBus) *Service {
	return &Service{repo: repo, audit: audit, bus: bus}
}

func (s *Service) Register(ctx context.Context, id, codeName string, skills []string, shift domaintech.Shift) (domaintech.Technician, error) {
	if shift == "" {
		shift = domaintech.ShiftDay
	}
	if !shift.Valid() {
		return domaintech.Technician{}, fmt.Errorf("%w: %q", ErrInvalidShift, shift)
	}

	created, err := s.repo.Create(ctx, domaintech.New(id, codeName, skills, shift))
	if err != nil {
		return domaintech.Technician{}, fmt.Errorf("register technician: %w", err)
	}

	s.record(ctx, domainaudit.New(created.ID, domainaudit.ActionTechnicianCreated, ""))
	if err := s.bus.Publish(ctx, event.New(event.TypeTechnicianCreated, created.ID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish TechnicianCreated event", "technician_id", created.ID, "error", err)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domaintech.Technician, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domaintech.Technician{}, fmt.Errorf("get technician: %w", err)
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, filters domaintech.ListFilters) ([]domaintech.Technician, error) {
	techs, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	return techs, nil
}

// ChangeShift moves a technician on or off shift. Coming on shift may free
// capacity for pending tasks; the sweeper listens for the event.
func (s *Service) ChangeShift(ctx context.Context, id string, shift domaintech.Shift) (domaintech.Technician, error) {
	if !shift.Valid() {
		return domaintech.Technician{}, fmt.Errorf("%w: %q", ErrInvalidShift, shift)
	}

	updated, err := s.repo.UpdateShift(ctx, id, shift)
	if err != nil {
		return domaintech.Technician{}, fmt.Errorf("change shift: %w", err)
	}

	s.record(ctx, domainaudit.New(id, domaintech.ShiftAuditAction(shift), ""))
	if err := s.bus.Publish(ctx, event.New(event.TypeTechnicianShiftChanged, id)); err != nil {
		slog.ErrorContext(ctx, "failed to publish TechnicianShiftChanged event", "technician_id", id, "error", err)
	}
	return updated, nil
}

func (s *Service) record(ctx context.Context, e domainaudit.Entry) {
	if err := s.audit.Append(ctx, e); err != nil {
		slog.ErrorContext(ctx, "failed to write audit entry", "entity_id", e.EntityID, "action", e.Action, "error", err)
	}
}
