package task

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/alanyang/hemotask/internal/domain/assignment"
	domainaudit "github.com/alanyang/hemotask/internal/domain/audit"
	"github.com/alanyang/hemotask/internal/domain/event"
	domaintask "github.com/alanyang/hemotask/internal/domain/task"
	domaintech "github.com/alanyang/hemotask/internal/domain/technician"
	portaudit "github.com/alanyang/hemotask/internal/port/audit"
	portbus "github.com/alanyang/hemotask/internal/port/eventbus"
	portlocker "github.com/alanyang/hemotask/internal/port/locker"
	portnotifier "github.com/alanyang/hemotask/internal/port/notifier"
	portselector "github.com/alanyang/hemotask/internal/port/selector"
	porttask "github.com/alanyang/hemotask/internal/port/task"
	porttech "github.com/alanyang/hemotask/internal/port/technician"
)

var (
	ErrNotFound              = domaintask.ErrNotFound
	ErrNotAssignable         = errors.New("task is not assignable")
	ErrNoEligibleTechnicians = errors.New("no eligible technicians available")
	ErrInvalidTransition     = errors.New("invalid task transition")
	ErrNotAuthorized         = errors.New("not authorized")
	ErrInvalidPriority       = errors.New("invalid priority")

	// ErrEmptySelection means the selector returned neither a technician nor
	// an error.
	ErrEmptySelection = errors.New("selector returned an empty result")
)

// Assignment is the outcome of a successful Assign.
type Assignment struct {
	TaskID     string `json:"task_id"`
	AssignedTo string `json:"assigned_to"`
}

// Service manages the task lifecycle and drives dispatch.
// [DIP] Depends on ports, never on adapters or transport.
type Service struct {
	repo     porttask.Repository
	techRepo porttech.Repository
	audit    portaudit.Repository
	bus      portbus.EventBus
	selector portselector.Selector
	notifier portnotifier.TechnicianNotifier
	locker   portlocker.AdvisoryLocker

	maxActiveTasks int
	now            func() time.Time
}

func NewService(
	repo porttask.Repository,
	techRepo porttech.Repository,
	audit portaudit.Repository,
	bus portbus.EventBus,
	selector portselector.Selector,
	notifier portnotifier.TechnicianNotifier,
	locker portlocker.AdvisoryLocker,
	maxActiveTasks int,
) *Service {
	if maxActiveTasks <= 0 {
		maxActiveTasks = domaintech.DefaultMaxActiveTasks
	}
	return &Service{
		repo:           repo,
		techRepo:       techRepo,
		audit:          audit,
		bus:            bus,
		selector:       selector,
		notifier:       notifier,
		locker:         locker,
		maxActiveTasks: maxActiveTasks,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, taskType, requiredSkill string, priority domaintask.Priority, deadline *time.Time) (domaintask.Task, error) {
	if priority == "" {
		priority = domaintask.PriorityRoutine
	}
	if !priority.Valid() {
		return domaintask.Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	created, err := s.repo.Create(ctx, domaintask.New(taskType, requiredSkill, priority, deadline))
	if err != nil {
		return domaintask.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.record(ctx, domainaudit.New(created.ID, domainaudit.ActionTaskCreated, ""))
	s.bus.Publish(ctx, event.New(event.TypeTaskCreated, created.ID)) //nolint:errcheck
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domaintask.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domaintask.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, filters domaintask.ListFilters) ([]domaintask.Task, error) {
	tasks, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Assign binds a pending task to the least-loaded eligible technician.
// Dispatch is serialised by one advisory lock: two concurrent assigns would
// otherwise read the same active_tasks snapshot and pile onto one technician.
// The task write and the workload increment commit together; the technician
// is notified only after the commit.
func (s *Service) Assign(ctx context.Context, id string) (Assignment, error) {
	var (
		out      Assignment
		priority domaintask.Priority
	)
	err := s.locker.WithLock(ctx, dispatchLockKey, func(ctx context.Context) error {
		a, p, err := s.assignLocked(ctx, id)
		out, priority = a, p
		return err
	})
	if err != nil {
		return Assignment{}, err
	}

	if err := s.notifier.NotifyTechnician(ctx, out.AssignedTo, map[string]string{
		"event": string(event.TypeTaskAssigned), "task_id": id, "priority": string(priority),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to notify technician", "technician_id", out.AssignedTo, "task_id", id, "error", err)
	}
	slog.InfoContext(ctx, "task assigned", "task_id", id, "technician_id", out.AssignedTo, "priority", priority)
	return out, nil
}

func (s *Service) assignLocked(ctx context.Context, id string) (Assignment, domaintask.Priority, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Assignment{}, "", fmt.Errorf("get task: %w", err)
	}
	if !t.Status.CanTransitionTo(domaintask.StatusAssigned) {
		return Assignment{}, "", fmt.Errorf("%w: status is %s", ErrNotAssignable, t.Status)
	}

	techs, err := s.techRepo.List(ctx, domaintech.ListFilters{})
	if err != nil {
		return Assignment{}, "", fmt.Errorf("list technicians: %w", err)
	}
	eligible := domaintech.Eligible(techs, t.RequiredSkill, s.maxActiveTasks)
	if len(eligible) == 0 {
		return Assignment{}, "", ErrNoEligibleTechnicians
	}

	res := s.selector.Select(assignment.Request{
		Task:        t.SelectionTask(),
		Technicians: domaintech.Candidates(eligible),
	})
	if !res.OK() {
		err := res.Err()
		switch {
		case errors.Is(err, assignment.ErrNoEligibleTechnician):
			return Assignment{}, "", fmt.Errorf("%w: %w", ErrNoEligibleTechnicians, err)
		case err != nil:
			return Assignment{}, "", fmt.Errorf("select technician: %w", err)
		default:
			return Assignment{}, "", ErrEmptySelection
		}
	}
	techID := *res.AssignedTo

	if err := s.repo.Assign(ctx, id, techID); err != nil {
		return Assignment{}, "", fmt.Errorf("assign task: %w", err)
	}
	if err := s.techRepo.AdjustActiveTasks(ctx, techID, 1); err != nil {
		return Assignment{}, "", fmt.Errorf("increment active tasks: %w", err)
	}

	s.record(ctx, domainaudit.New(id, domainaudit.ActionTaskAssigned, techID))
	s.bus.Publish(ctx, event.New(event.TypeTaskAssigned, id).WithActor(techID)) //nolint:errcheck
	return Assignment{TaskID: id, AssignedTo: techID}, t.Priority, nil
}

// Start moves an assigned task into progress. Only the assignee may start it.
func (s *Service) Start(ctx context.Context, id, technicianID string) (domaintask.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domaintask.Task{}, fmt.Errorf("get task: %w", err)
	}
	if !t.Status.CanTransitionTo(domaintask.StatusInProgress) {
		return domaintask.Task{}, fmt.Errorf("%w: task cannot be started from %s", ErrInvalidTransition, t.Status)
	}
	if !t.IsAssignedTo(technicianID) {
		return domaintask.Task{}, ErrNotAuthorized
	}

	now := s.now()
	if err := s.repo.Start(ctx, id, technicianID, now); err != nil {
		return domaintask.Task{}, fmt.Errorf("start task: %w", err)
	}
	t.Status = domaintask.StatusInProgress
	t.StartedAt = &now

	s.record(ctx, domainaudit.New(id, domainaudit.ActionTaskStarted, technicianID))
	s.bus.Publish(ctx, event.New(event.TypeTaskStarted, id).WithActor(technicianID)) //nolint:errcheck
	return t, nil
}

// Complete closes an in-progress task, records its duration and releases one
// unit of the technician's workload. It runs under the dispatch lock so the
// status write and the release commit together.
func (s *Service) Complete(ctx context.Context, id, technicianID string) (domaintask.Task, error) {
	var out domaintask.Task
	err := s.locker.WithLock(ctx, dispatchLockKey, func(ctx context.Context) error {
		t, err := s.completeLocked(ctx, id, technicianID)
		out = t
		return err
	})
	if err != nil {
		return domaintask.Task{}, err
	}
	return out, nil
}

func (s *Service) completeLocked(ctx context.Context, id, technicianID string) (domaintask.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domaintask.Task{}, fmt.Errorf("get task: %w", err)
	}
	if !t.Status.CanTransitionTo(domaintask.StatusCompleted) {
		return domaintask.Task{}, fmt.Errorf("%w: task not in progress (%s)", ErrInvalidTransition, t.Status)
	}
	if !t.IsAssignedTo(technicianID) {
		return domaintask.Task{}, ErrNotAuthorized
	}

	now := s.now()
	secs := int64(t.Duration(now).Seconds())
	if err := s.repo.Complete(ctx, id, technicianID, now, secs); err != nil {
		return domaintask.Task{}, fmt.Errorf("complete task: %w", err)
	}
	if err := s.techRepo.AdjustActiveTasks(ctx, technicianID, -1); err != nil {
		return domaintask.Task{}, fmt.Errorf("decrement active tasks: %w", err)
	}
	t.Status = domaintask.StatusCompleted
	t.CompletedAt = &now
	t.DurationSeconds = &secs

	s.record(ctx, domainaudit.New(id, domainaudit.ActionTaskCompleted, technicianID))
	s.bus.Publish(ctx, event.New(event.TypeTaskCompleted, id).WithActor(technicianID)) //nolint:errcheck
	return t, nil
}

// SweepPending assigns waiting tasks, oldest first. A task with no eligible
// technician is skipped, since a later task may need a different skill. Each
// task is dispatched in its own locked transaction, so a failure keeps the
// assignments already made. Returns the number of tasks assigned.
func (s *Service) SweepPending(ctx context.Context) (int, error) {
	status := domaintask.StatusPending
	tasks, err := s.repo.List(ctx, domaintask.ListFilters{Status: &status, OldestFirst: true})
	if err != nil {
		return 0, fmt.Errorf("list pending tasks: %w", err)
	}

	assigned := 0
	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return assigned, err
		}
		_, err := s.Assign(ctx, t.ID)
		switch {
		case err == nil:
			assigned++
		case errors.Is(err, ErrNoEligibleTechnicians),
			errors.Is(err, ErrNotAssignable),
			errors.Is(err, domaintask.ErrConflict):
			continue
		default:
			return assigned, fmt.Errorf("sweep task %s: %w", t.ID, err)
		}
	}
	return assigned, nil
}

func (s *Service) record(ctx context.Context, e domainaudit.Entry) {
	if err := s.audit.Append(ctx, e); err != nil {
		slog.ErrorContext(ctx, "failed to write audit entry", "entity_id", e.EntityID, "action", e.Action, "error", err)
	}
}

var dispatchLockKey = advisoryKey("hemotask:dispatch")

// advisoryKey hashes a lock scope to a stable int64 for pg_advisory_lock.
func advisoryKey(scope string) int64 {
	h := fnv.New64a()
	h.Write([]byte(scope))
	return int64(h.Sum64())
}
