package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alanyang/hemotask/internal/domain/assignment"
)

var (
	ErrNotFound = errors.New("task not found")
	// ErrConflict means a compare-and-swap update found the task in another
	// status or owned by another technician.
	ErrConflict = errors.New("task status conflict")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var validTransitions = map[Status][]Status{
	StatusPending:    {StatusAssigned},
	StatusAssigned:   {StatusInProgress},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityRoutine   Priority = "routine"
	PriorityUrgent    Priority = "urgent"
	PriorityEmergency Priority = "emergency"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityRoutine, PriorityUrgent, PriorityEmergency:
		return true
	}
	return false
}

type Task struct {
	ID              string     `json:"id"`
	TaskType        string     `json:"task_type"`
	RequiredSkill   string     `json:"required_skill"`
	Priority        Priority   `json:"priority"`
	Status          Status     `json:"status"`
	AssignedTo      *string    `json:"assigned_to"`
	CreatedAt       time.Time  `json:"created_at"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
}

// NewID returns a short task identifier of the form TASK_1a2b3c.
func NewID() string {
	return "TASK_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

func New(taskType, requiredSkill string, priority Priority, deadline *time.Time) Task {
	return Task{
		ID:            NewID(),
		TaskType:      taskType,
		RequiredSkill: requiredSkill,
		Priority:      priority,
		Status:        StatusPending,
		CreatedAt:     time.Now().UTC(),
		Deadline:      deadline,
	}
}

func (t *Task) IsAssignedTo(technicianID string) bool {
	return t.AssignedTo != nil && *t.AssignedTo == technicianID
}

// Duration is measured from StartedAt. A task that was never started reports
// zero.
func (t *Task) Duration(completedAt time.Time) time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return completedAt.Sub(*t.StartedAt)
}

// SelectionTask is the record handed to the selector.
func (t *Task) SelectionTask() assignment.Task {
	return assignment.Task{RequiredSkill: t.RequiredSkill, Priority: string(t.Priority)}
}

type ListFilters struct {
	Status      *Status
	Priority    *Priority
	AssignedTo  *string
	OldestFirst bool // ORDER BY created_at ASC (default is DESC)
}
