package notifier

import "context"

// TechnicianNotifier pushes an event to a connected technician's session.
// Implementations must be a no-op when the technician is not connected.
type TechnicianNotifier interface {
	NotifyTechnician(ctx context.Context, technicianID string, event any) error
}
