package event

import (
	"time"
)

type Type string

const (
	TypeTaskCreated            Type = "task_created"
	TypeTaskAssigned           Type = "task_assigned"
	TypeTaskStarted            Type = "task_started"
	TypeTaskCompleted          Type = "task_completed"
	TypeTechnicianCreated      Type = "technician_created"
	TypeTechnicianShiftChanged Type = "technician_shift_changed"
)

// Channel is a domain-scoped Postgres NOTIFY channel.
// All event types within a domain share one LISTEN connection.
type Channel string

const (
	ChannelTask       Channel = "task"
	ChannelTechnician Channel = "technician"
)

var typeToChannel = map[Type]Channel{
	TypeTaskCreated:            ChannelTask,
	TypeTaskAssigned:           ChannelTask,
	TypeTaskStarted:            ChannelTask,
	TypeTaskCompleted:          ChannelTask,
	TypeTechnicianCreated:      ChannelTechnician,
	TypeTechnicianShiftChanged: ChannelTechnician,
}

// Channels lists every domain channel.
func Channels() []Channel { return []Channel{ChannelTask, ChannelTechnician} }

// ChannelFor returns the domain channel for a given event type.
func ChannelFor(t Type) Channel { return typeToChannel[t] }

// Event carries identifiers only, not full state. Subscribers fetch fresh
// state from the appropriate repository. Actor is the technician involved,
// if any.
type Event struct {
	Type      Type      `json:"type"`
	EntityID  string    `json:"entity_id"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType Type, entityID string) Event {
	return Event{
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}

func (e Event) WithActor(actor string) Event {
	e.Actor = actor
	return e
}
