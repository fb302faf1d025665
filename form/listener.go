package form

import (
	"context"

	"github.com/tailored-agentic-units/formkit/store"
)

// Listener receives the form state when a submission passes validation.
// Every listener of one submission gets its own copy of the same snapshot,
// so it may modify or retain the state without affecting other listeners.
type Listener interface {
	OnSubmit(ctx context.Context, state store.State) error
}

type listenerFunc struct {
	fn func(ctx context.Context, state store.State) error
}

func (l *listenerFunc) OnSubmit(ctx context.Context, state store.State) error {
	return l.fn(ctx, state)
}

// OnSubmit adapts a function into a Listener. Keep the returned value to
// remove the listener later.
func OnSubmit(fn func(ctx context.Context, state store.State) error) Listener {
	return &listenerFunc{fn: fn}
}

// Notify adapts a function that cannot fail into a Listener.
func Notify(fn func(state store.State)) Listener {
	return &listenerFunc{fn: func(_ context.Context, state store.State) error {
		fn(state)
		return nil
	}}
}
