package selector

import "github.com/alanyang/hemotask/internal/domain/assignment"

// Selector chooses one technician for a task.
// [SRP] Only selects. Does not persist or notify.
type Selector interface {
	Select(req assignment.Request) assignment.Result
}
