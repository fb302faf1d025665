package store

import (
	"context"
	"time"

	"github.com/tailored-agentic-units/formkit/observability"
)

const (
	EventDispatch  observability.EventType = "store.dispatch"
	EventSubscribe observability.EventType = "store.subscribe"
)

type observed struct {
	Store
	observer observability.Observer
}

// WithObserver returns an Enhancer that reports every dispatch and
// subscription of the enhanced store to observer.
func WithObserver(observer observability.Observer) Enhancer {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	return func(next Factory) Factory {
		return func() Store {
			return &observed{Store: next(), observer: observer}
		}
	}
}

func (o *observed) Dispatch(action Action) {
	start := time.Now()
	o.Store.Dispatch(action)

	o.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventDispatch,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "store",
		Data: map[string]any{
			"action":   action.Type,
			"duration": time.Since(start),
		},
	})
}

func (o *observed) Subscribe(listener func()) func() {
	o.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventSubscribe,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "store",
	})
	return o.Store.Subscribe(listener)
}
