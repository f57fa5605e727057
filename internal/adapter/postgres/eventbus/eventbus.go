package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pgdb "github.com/alanyang/hemotask/internal/adapter/postgres"
	"github.com/alanyang/hemotask/internal/domain/event"
	porteventbus "github.com/alanyang/hemotask/internal/port/eventbus"
)

// EventBus carries domain events over Postgres LISTEN/NOTIFY so every
// server process sees assignments made by any other.
type EventBus struct {
	pool *pgxpool.Pool

	mu   sync.Mutex
	subs map[event.Channel]map[*subscription]struct{}
}

func New(pool *pgxpool.Pool) *EventBus {
	return &EventBus{
		pool: pool,
		subs: make(map[event.Channel]map[*subscription]struct{}),
	}
}

func (eb *EventBus) Publish(ctx context.Context, e event.Event) error {
	ch := event.ChannelFor(e.Type)
	if ch == "" {
		return fmt.Errorf("no channel for event type %q", e.Type)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	channel := channelName(ch)
	// Inside a transaction the notification is delivered on commit.
	if _, err := pgdb.Conn(ctx, eb.pool).Exec(ctx, "SELECT pg_notify($1, $2)", channel, string(payload)); err != nil {
		return fmt.Errorf("publishing event on channel %s: %w", channel, err)
	}
	return nil
}

// Subscribe opens a dedicated connection, outside the pool, and holds it in
// LISTEN until the subscription or ctx ends. Long-lived listeners never
// count against the pool's MaxConns.
func (eb *EventBus) Subscribe(ctx context.Context, ch event.Channel, handler porteventbus.Handler) (porteventbus.Subscription, error) {
	conn, err := pgx.ConnectConfig(ctx, eb.pool.Config().ConnConfig.Copy())
	if err != nil {
		return nil, fmt.Errorf("connecting for LISTEN: %w", err)
	}

	channel := channelName(ch)
	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		conn.Close(context.Background()) //nolint:errcheck
		return nil, fmt.Errorf("executing LISTEN on channel %s: %w", channel, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscription{cancel: cancel, done: make(chan struct{})}

	eb.mu.Lock()
	if eb.subs[ch] == nil {
		eb.subs[ch] = make(map[*subscription]struct{})
	}
	eb.subs[ch][sub] = struct{}{}
	eb.mu.Unlock()

	go func() {
		defer func() {
			conn.Close(context.Background()) //nolint:errcheck
			eb.mu.Lock()
			delete(eb.subs[ch], sub)
			eb.mu.Unlock()
			close(sub.done)
		}()

		for {
			notification, err := conn.WaitForNotification(subCtx)
			if err != nil {
				if subCtx.Err() != nil {
					return
				}
				if conn.IsClosed() {
					slog.Error("LISTEN connection lost", "channel", channel, "error", err)
					return
				}
				slog.Warn("waiting for notification", "channel", channel, "error", err)
				continue
			}

			var e event.Event
			if err := json.Unmarshal([]byte(notification.Payload), &e); err != nil {
				slog.Warn("dropping malformed event payload", "channel", channel, "error", err)
				continue
			}

			handler(subCtx, e)
		}
	}()

	return sub, nil
}

func channelName(ch event.Channel) string {
	return "hemotask_" + string(ch)
}

type subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *subscription) Unsubscribe() {
	s.cancel()
	<-s.done
}
