package selector

import (
	"time"

	"github.com/alanyang/hemotask/internal/domain/assignment"
	portmetrics "github.com/alanyang/hemotask/internal/port/metrics"
	portselector "github.com/alanyang/hemotask/internal/port/selector"
)

var _ portselector.Selector = (*Service)(nil)

// Service runs the workload selector and records the outcome.
// [SRP] Only selects. Does not persist or notify.
type Service struct {
	rec portmetrics.Recorder
	now func() time.Time
}

func NewService(rec portmetrics.Recorder) *Service {
	if rec == nil {
		rec = portmetrics.Nop{}
	}
	return &Service{rec: rec, now: time.Now}
}

// Select delegates to assignment.Select. The request is passed by value and
// never retained.
func (s *Service) Select(req assignment.Request) assignment.Result {
	start := s.now()
	res := assignment.Select(req)

	outcome := portmetrics.OutcomeAssigned
	if !res.OK() {
		outcome = portmetrics.OutcomeNoEligible
	}
	s.rec.ObserveSelection(outcome, s.now().Sub(start))
	return res
}
