package worker

import (
	"context"
	"time"
)

type EventType string

const (
	EventPersisted     EventType = "persisted"
	EventPersistFailed EventType = "persist_failed"
	EventLoadCorrupt   EventType = "load_corrupt"
)

// Event reports the outcome of a collection write or load.
type Event struct {
	Type      EventType
	Key       string
	Records   int
	Err       error
	Timestamp time.Time
}

// Notifier receives persistence events. Implementations must not block for
// long: the persist worker calls Notify inline.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ev Event)

func (f NotifierFunc) Notify(ctx context.Context, ev Event) {
	f(ctx, ev)
}

// Notifiers fans an event out to every member in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, ev Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(ctx, ev)
		}
	}
}
