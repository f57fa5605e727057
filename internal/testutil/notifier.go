//go:build integration

package testutil

import (
	"context"
	"sync"
)

// NotifyCall records a single notification delivered by CaptureNotifier.
type NotifyCall struct {
	TechnicianID string
	Event        any
}

// CaptureNotifier implements TechnicianNotifier and records every call.
// Safe for concurrent use.
type CaptureNotifier struct {
	mu    sync.Mutex
	Calls []NotifyCall
}

func (c *CaptureNotifier) NotifyTechnician(_ context.Context, technicianID string, event any) error {
	c.mu.Lock()
	c.Calls = append(c.Calls, NotifyCall{TechnicianID: technicianID, Event: event})
	c.mu.Unlock()
	return nil
}

// For returns the calls made for one technician.
func (c *CaptureNotifier) For(technicianID string) []NotifyCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []NotifyCall
	for _, call := range c.Calls {
		if call.TechnicianID == technicianID {
			out = append(out, call)
		}
	}
	return out
}

func (c *CaptureNotifier) Reset() {
	c.mu.Lock()
	c.Calls = nil
	c.mu.Unlock()
}
