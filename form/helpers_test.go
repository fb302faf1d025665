package form_test

import (
	"context"
	"sync"
	"testing"

	"github.com/tailored-agentic-units/formkit/form"
	"github.com/tailored-agentic-units/formkit/observability"
	"github.com/tailored-agentic-units/formkit/store"
)

// recorder captures every action dispatched through it.
type recorder struct {
	store.Store

	mu      sync.Mutex
	actions []store.Action
}

func (r *recorder) Dispatch(action store.Action) {
	r.mu.Lock()
	r.actions = append(r.actions, action)
	r.mu.Unlock()

	r.Store.Dispatch(action)
}

func (r *recorder) ofType(actionType string) []store.Action {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []store.Action
	for _, a := range r.actions {
		if a.Type == actionType {
			out = append(out, a)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = nil
}

type captureObserver struct {
	mu     sync.Mutex
	events []observability.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observability.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureObserver) ofType(eventType observability.EventType) []observability.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []observability.Event
	for _, e := range c.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// collector is a listener that keeps every state it receives.
type collector struct {
	mu     sync.Mutex
	states []store.State
}

func (c *collector) OnSubmit(ctx context.Context, state store.State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states = append(c.states, state)
	return nil
}

func (c *collector) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.states)
}

func (c *collector) last() store.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.states) == 0 {
		return nil
	}
	return c.states[len(c.states)-1]
}

func newTestForm(t *testing.T, initial store.State, opts ...form.Option) (*form.Form, *recorder) {
	t.Helper()

	rec := &recorder{Store: store.New(form.Reducer, initial)}
	f, err := form.New(context.Background(), rec, form.DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("form.New() error = %v", err)
	}
	t.Cleanup(f.Unsubscribe)
	return f, rec
}

func required(message string) form.Validator {
	return form.Predicate(func(value any) bool {
		s, ok := value.(string)
		return ok && s != ""
	}, message)
}
