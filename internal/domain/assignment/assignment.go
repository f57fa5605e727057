// Package assignment holds the workload-based technician selector.
//
// Select is a pure function of its Request: it keeps no state between calls,
// performs no I/O and never mutates its input, so callers may run it
// concurrently without coordination.
package assignment

import "errors"

const (
	MessageNoEligibleTechnician = "No eligible technician"
	MessageInvalidInput         = "Invalid input"
)

var (
	ErrNoEligibleTechnician = errors.New("no eligible technician")
	ErrMalformedInput       = errors.New("malformed assignment input")
)

// Task is the unit of work to place. Priority is informational: emergency
// tasks are load-balanced like any other, never delayed or rejected.
type Task struct {
	RequiredSkill string `json:"required_skill"`
	Priority      string `json:"priority"`
}

// Technician is a selection candidate as supplied by the caller.
type Technician struct {
	ID          string   `json:"id"`
	Skills      []string `json:"skills"`
	ActiveTasks uint32   `json:"active_tasks"`
}

// Request owns one task and its ordered candidates. Duplicate IDs are not
// collapsed; each entry is an independent candidate.
type Request struct {
	Task        Task         `json:"task"`
	Technicians []Technician `json:"technicians"`
}

// Result carries exactly one of AssignedTo or Error.
type Result struct {
	AssignedTo *string `json:"assigned_to"`
	Error      *string `json:"error"`
}

func Assigned(id string) Result {
	return Result{AssignedTo: &id}
}

func Failed(msg string) Result {
	return Result{Error: &msg}
}

func (r Result) OK() bool { return r.AssignedTo != nil }

// Err maps a failure result back to its sentinel. It returns nil on success.
func (r Result) Err() error {
	if r.Error == nil {
		return nil
	}
	switch *r.Error {
	case MessageNoEligibleTechnician:
		return ErrNoEligibleTechnician
	case MessageInvalidInput:
		return ErrMalformedInput
	}
	return errors.New(*r.Error)
}

// Select picks the candidate with the fewest active tasks. Ties go to the
// earliest candidate in input order. Required skill and priority are carried
// but not consulted.
func Select(req Request) Result {
	if len(req.Technicians) == 0 {
		return Failed(MessageNoEligibleTechnician)
	}

	best := 0
	for i := 1; i < len(req.Technicians); i++ {
		if req.Technicians[i].ActiveTasks < req.Technicians[best].ActiveTasks {
			best = i
		}
	}
	return Assigned(req.Technicians[best].ID)
}
