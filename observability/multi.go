package observability

import "context"

// MultiObserver forwards each event to several observers in order.
type MultiObserver struct {
	observers []Observer
}

// NewMultiObserver combines observers into one. Nil and NoOpObserver
// entries are dropped and nested MultiObservers are flattened. With nothing
// left it returns NoOpObserver, and with a single observer that observer
// itself.
func NewMultiObserver(observers ...Observer) Observer {
	flat := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		switch o := obs.(type) {
		case nil, NoOpObserver:
		case *MultiObserver:
			flat = append(flat, o.observers...)
		default:
			flat = append(flat, o)
		}
	}

	switch len(flat) {
	case 0:
		return NoOpObserver{}
	case 1:
		return flat[0]
	}
	return &MultiObserver{observers: flat}
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, obs := range m.observers {
		obs.OnEvent(ctx, event)
	}
}

type levelFilter struct {
	min  Level
	next Observer
}

// NewLevelFilter forwards to next only events at min or above.
func NewLevelFilter(min Level, next Observer) Observer {
	if next == nil {
		return NoOpObserver{}
	}
	return &levelFilter{min: min, next: next}
}

func (f *levelFilter) OnEvent(ctx context.Context, event Event) {
	if event.Level >= f.min {
		f.next.OnEvent(ctx, event)
	}
}
