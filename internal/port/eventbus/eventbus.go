package eventbus

import (
	"context"

	"github.com/alanyang/hemotask/internal/domain/event"
)

type Handler func(ctx context.Context, e event.Event)

type Subscription interface {
	Unsubscribe()
}

// EventBus fans domain events out across processes. Subscribe delivers every
// event published on the channel, so handlers filter on e.Type.
type EventBus interface {
	Publish(ctx context.Context, e event.Event) error
	Subscribe(ctx context.Context, ch event.Channel, handler Handler) (Subscription, error)
}
