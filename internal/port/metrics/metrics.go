package metrics

import "time"

const (
	OutcomeAssigned   = "assigned"
	OutcomeNoEligible = "no_eligible"
)

// Recorder receives selector observations.
type Recorder interface {
	ObserveSelection(outcome string, took time.Duration)
}

// Nop discards observations.
type Nop struct{}

func (Nop) ObserveSelection(string, time.Duration) {}
