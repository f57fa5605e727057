package audit

import (
	"fmt"
	"time"
)

// SystemActor is recorded when no technician performed the action.
const SystemActor = "SYSTEM"

const (
	ActionTechnicianCreated = "TECHNICIAN_CREATED"
	ActionTaskCreated       = "TASK_CREATED"
	ActionTaskAssigned      = "TASK_ASSIGNED"
	ActionTaskStarted       = "TASK_STARTED"
	ActionTaskCompleted     = "TASK_COMPLETED"
)

// Entry is one append-only audit record.
type Entry struct {
	ID          int64     `json:"id"`
	EntityID    string    `json:"entity_id"`
	Action      string    `json:"action"`
	PerformedBy string    `json:"performed_by"`
	At          time.Time `json:"at"`
}

func New(entityID, action, performedBy string) Entry {
	if performedBy == "" {
		performedBy = SystemActor
	}
	return Entry{
		EntityID:    entityID,
		Action:      action,
		PerformedBy: performedBy,
		At:          time.Now().UTC(),
	}
}

// Line renders the entry in the flat log format: ts | entity | action | by.
func (e Entry) Line() string {
	return fmt.Sprintf("%s | %s | %s | %s", e.At.Format(time.RFC3339Nano), e.EntityID, e.Action, e.PerformedBy)
}

type ListFilters struct {
	EntityID *string
	Limit    int
}
