// Package eventbus provides in-process fan-out of planning events.
package eventbus

import "context"

// Event represents an arbitrary event passed on the bus.
type Event interface{}

// EventBus implements a simple publish/subscribe event bus.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the default EventBus implementation using fan-out channels.
type Bus = TypedBus[Event]

// New creates a new Bus.
func New() *Bus { return NewTyped[Event]() }

// Listen calls fn for every event of type T received on sub until the channel
// is closed or ctx is done. Events of other types are skipped.
func Listen[T any](ctx context.Context, sub <-chan Event, fn func(T)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			if v, ok := ev.(T); ok {
				fn(v)
			}
		}
	}
}
