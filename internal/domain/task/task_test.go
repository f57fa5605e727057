package task_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/hemotask/internal/domain/assignment"
	. "github.com/alanyang/hemotask/internal/domain/task"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		// Forward edges
		{name: "pending→assigned", from: StatusPending, to: StatusAssigned, want: true},
		{name: "assigned→in_progress", from: StatusAssigned, to: StatusInProgress, want: true},
		{name: "in_progress→completed", from: StatusInProgress, to: StatusCompleted, want: true},

		// No skipping
		{name: "pending→in_progress invalid", from: StatusPending, to: StatusInProgress, want: false},
		{name: "pending→completed invalid", from: StatusPending, to: StatusCompleted, want: false},
		{name: "assigned→completed invalid", from: StatusAssigned, to: StatusCompleted, want: false},

		// No going back
		{name: "assigned→pending invalid", from: StatusAssigned, to: StatusPending, want: false},
		{name: "in_progress→assigned invalid", from: StatusInProgress, to: StatusAssigned, want: false},

		// Completed is terminal
		{name: "completed→pending invalid", from: StatusCompleted, to: StatusPending, want: false},
		{name: "completed→in_progress invalid", from: StatusCompleted, to: StatusInProgress, want: false},

		// Self-transitions are never valid
		{name: "pending self-transition", from: StatusPending, to: StatusPending, want: false},
		{name: "completed self-transition", from: StatusCompleted, to: StatusCompleted, want: false},

		// Unknown status
		{name: "unknown→assigned is false", from: Status("garbage"), to: StatusAssigned, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNew(t *testing.T) {
	tk := New("repair", "plumbing", PriorityEmergency, nil)

	assert.Regexp(t, regexp.MustCompile(`^TASK_[0-9a-f]{6}$`), tk.ID)
	assert.Equal(t, StatusPending, tk.Status)
	assert.Nil(t, tk.AssignedTo)
	assert.False(t, tk.CreatedAt.IsZero())
	assert.NotEqual(t, tk.ID, New("repair", "plumbing", PriorityRoutine, nil).ID)
}

func TestPriority_Valid(t *testing.T) {
	assert.True(t, PriorityRoutine.Valid())
	assert.True(t, PriorityUrgent.Valid())
	assert.True(t, PriorityEmergency.Valid())
	assert.False(t, Priority("Emergency").Valid())
}

func TestIsAssignedTo(t *testing.T) {
	tk := Task{}
	assert.False(t, tk.IsAssignedTo("T1"))

	id := "T1"
	tk.AssignedTo = &id
	assert.True(t, tk.IsAssignedTo("T1"))
	assert.False(t, tk.IsAssignedTo("T2"))
}

func TestDuration(t *testing.T) {
	tk := Task{}
	now := time.Now().UTC()
	assert.Zero(t, tk.Duration(now))

	started := now.Add(-90 * time.Second)
	tk.StartedAt = &started
	assert.Equal(t, 90*time.Second, tk.Duration(now))
}

func TestSelectionTask(t *testing.T) {
	tk := Task{RequiredSkill: "hvac", Priority: PriorityUrgent}
	assert.Equal(t, assignment.Task{RequiredSkill: "hvac", Priority: "urgent"}, tk.SelectionTask())
}
