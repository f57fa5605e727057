package audit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/hemotask/internal/domain/audit"
)

func TestNew_DefaultsToSystem(t *testing.T) {
	e := audit.New("TASK_abc123", audit.ActionTaskCreated, "")
	assert.Equal(t, audit.SystemActor, e.PerformedBy)
	assert.False(t, e.At.IsZero())

	e = audit.New("TASK_abc123", audit.ActionTaskStarted, "T1")
	assert.Equal(t, "T1", e.PerformedBy)
}

func TestEntry_Line(t *testing.T) {
	e := audit.Entry{
		EntityID:    "TASK_abc123",
		Action:      audit.ActionTaskAssigned,
		PerformedBy: "T2",
		At:          time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "2026-03-01T12:30:00Z | TASK_abc123 | TASK_ASSIGNED | T2", e.Line())
}
