package technician

import (
	"errors"
	"strings"
	"time"

	"github.com/alanyang/hemotask/internal/domain/assignment"
)

var (
	ErrNotFound      = errors.New("technician not found")
	ErrAlreadyExists = errors.New("technician already exists")
)

type Shift string

const (
	ShiftDay   Shift = "day"
	ShiftNight Shift = "night"
	ShiftOff   Shift = "off"
)

// DefaultMaxActiveTasks is the capacity used when no override is configured.
const DefaultMaxActiveTasks = 3

func (s Shift) Valid() bool {
	switch s {
	case ShiftDay, ShiftNight, ShiftOff:
		return true
	}
	return false
}

type Technician struct {
	ID          string    `json:"id"`
	CodeName    string    `json:"code_name"`
	Skills      []string  `json:"skills"`
	Shift       Shift     `json:"shift"`
	ActiveTasks int       `json:"active_tasks"`
	CreatedAt   time.Time `json:"created_at"`
}

func New(id, codeName string, skills []string, shift Shift) Technician {
	if skills == nil {
		skills = []string{}
	}
	return Technician{
		ID:        id,
		CodeName:  codeName,
		Skills:    skills,
		Shift:     shift,
		CreatedAt: time.Now().UTC(),
	}
}

func (t *Technician) IsOnShift() bool {
	return t.Shift != ShiftOff
}

func (t *Technician) HasSkill(skill string) bool {
	for _, s := range t.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

func (t *Technician) CanAcceptTask(maxTasks int) bool {
	return t.ActiveTasks < maxTasks
}

// Candidate projects the technician onto the selector's input record.
func (t *Technician) Candidate() assignment.Technician {
	active := t.ActiveTasks
	if active < 0 {
		active = 0
	}
	return assignment.Technician{
		ID:          t.ID,
		Skills:      append([]string(nil), t.Skills...),
		ActiveTasks: uint32(active),
	}
}

// Eligible keeps technicians that are on shift, hold the skill and are under
// capacity. Input order is preserved so the selector's tie-break stays stable.
func Eligible(techs []Technician, skill string, maxTasks int) []Technician {
	out := make([]Technician, 0, len(techs))
	for i := range techs {
		t := &techs[i]
		if !t.IsOnShift() || !t.HasSkill(skill) || !t.CanAcceptTask(maxTasks) {
			continue
		}
		out = append(out, *t)
	}
	return out
}

// Candidates converts a slice for the selector.
func Candidates(techs []Technician) []assignment.Technician {
	out := make([]assignment.Technician, len(techs))
	for i := range techs {
		out[i] = techs[i].Candidate()
	}
	return out
}

// ShiftAuditAction renders the audit action written on a shift change.
func ShiftAuditAction(s Shift) string {
	return "SHIFT_CHANGED_TO_" + strings.ToUpper(string(s))
}

type ListFilters struct {
	Shift *Shift
	Skill *string
}
