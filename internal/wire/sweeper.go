package wire

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alanyang/hemotask/internal/domain/event"
	porteventbus "github.com/alanyang/hemotask/internal/port/eventbus"
)

// SweepFunc assigns waiting tasks and reports how many it placed.
type SweepFunc func(ctx context.Context) (int, error)

// Sweeper re-runs dispatch when capacity may have appeared: a technician was
// added or changed shift, or a task completed. Bursts of events collapse
// into one sweep. A ticker covers notifications lost while disconnected.
type Sweeper struct {
	sweep    SweepFunc
	interval time.Duration
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func NewSweeper(sweep SweepFunc, interval, debounce time.Duration) *Sweeper {
	return &Sweeper{sweep: sweep, interval: interval, debounce: debounce}
}

// Start subscribes to the technician and task channels and starts the
// ticker. Cancelling ctx stops both and drops any pending debounced sweep.
func (s *Sweeper) Start(ctx context.Context, bus porteventbus.EventBus) error {
	for _, ch := range []event.Channel{event.ChannelTechnician, event.ChannelTask} {
		if _, err := bus.Subscribe(ctx, ch, s.handle); err != nil {
			return fmt.Errorf("sweeper: subscribe %s: %w", ch, err)
		}
	}

	go func() {
		<-ctx.Done()
		s.stop()
	}()

	if s.interval > 0 {
		go func() {
			ticker := time.NewTicker(s.interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					s.run(ctx, "tick")
				}
			}
		}()
	}
	return nil
}

func (s *Sweeper) handle(ctx context.Context, e event.Event) {
	switch e.Type {
	case event.TypeTechnicianCreated, event.TypeTechnicianShiftChanged, event.TypeTaskCompleted:
		s.Trigger(ctx)
	}
}

// Trigger schedules a sweep after the debounce window, restarting the window
// if one is already pending. It is a no-op once the sweeper has stopped or
// ctx is done.
func (s *Sweeper) Trigger(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || ctx.Err() != nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		s.run(ctx, "event")
	})
}

func (s *Sweeper) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *Sweeper) run(ctx context.Context, reason string) {
	n, err := s.sweep(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "sweeper: sweep failed", "reason", reason, "error", err)
		return
	}
	if n > 0 {
		slog.InfoContext(ctx, "sweeper: assigned pending tasks", "reason", reason, "count", n)
	}
}
