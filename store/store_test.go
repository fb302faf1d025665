package store_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tailored-agentic-units/formkit/observability"
	"github.com/tailored-agentic-units/formkit/store"
)

type captureObserver struct {
	mu     sync.Mutex
	events []observability.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observability.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func counterReducer(state store.State, action store.Action) store.State {
	switch action.Type {
	case "inc":
		count, _ := state["count"].(int)
		return store.State{"count": count + 1}
	case "set":
		return store.State{"count": action.Payload}
	}
	return state
}

func TestMemory_DispatchReduces(t *testing.T) {
	s := store.New(counterReducer, store.State{"count": 0})

	s.Dispatch(store.Action{Type: "inc"})
	s.Dispatch(store.Action{Type: "inc"})
	s.Dispatch(store.Action{Type: "unknown"})

	if got := s.GetState()["count"]; got != 2 {
		t.Errorf("count = %v, want 2", got)
	}
}

func TestMemory_NilDefaults(t *testing.T) {
	s := store.New(nil, nil)
	s.Dispatch(store.Action{Type: "inc"})

	if state := s.GetState(); state == nil || len(state) != 0 {
		t.Errorf("GetState() = %v, want empty state", state)
	}
}

func TestMemory_SubscribeOrderAndUnsubscribe(t *testing.T) {
	s := store.New(counterReducer, nil)

	var calls []string
	unsubA := s.Subscribe(func() { calls = append(calls, "a") })
	s.Subscribe(func() { calls = append(calls, "b") })

	s.Dispatch(store.Action{Type: "inc"})
	unsubA()
	unsubA()
	s.Dispatch(store.Action{Type: "inc"})

	want := []string{"a", "b", "b"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("notification order mismatch (-want +got):\n%s", diff)
	}
	if got := s.Subscribers(); got != 1 {
		t.Errorf("Subscribers() = %d, want 1", got)
	}
}

func TestMemory_NestedDispatch(t *testing.T) {
	s := store.New(counterReducer, store.State{"count": 0})

	var nested atomic.Bool
	notified := 0
	s.Subscribe(func() {
		notified++
		if nested.CompareAndSwap(false, true) {
			s.Dispatch(store.Action{Type: "inc"})
		}
	})

	s.Dispatch(store.Action{Type: "inc"})

	if got := s.GetState()["count"]; got != 2 {
		t.Errorf("count = %v, want 2", got)
	}
	if notified != 2 {
		t.Errorf("subscriber notified %d times, want 2", notified)
	}
}

func TestMemory_ConcurrentDispatch(t *testing.T) {
	s := store.New(func(state store.State, action store.Action) store.State {
		count, _ := state["count"].(int)
		return store.State{"count": count + 1}
	}, nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(store.Action{Type: "inc"})
		}()
	}
	wg.Wait()

	if got := s.GetState()["count"]; got != 50 {
		t.Errorf("count = %v, want 50", got)
	}
}

func TestCombine(t *testing.T) {
	reducer := store.Combine(map[string]store.Reducer{
		"counter": counterReducer,
	})
	s := store.New(reducer, store.State{
		"counter": store.State{"count": 0},
		"other":   "kept",
	})

	s.Dispatch(store.Action{Type: "inc"})

	want := store.State{
		"counter": store.State{"count": 1},
		"other":   "kept",
	}
	if diff := cmp.Diff(want, s.GetState()); diff != "" {
		t.Errorf("combined state mismatch (-want +got):\n%s", diff)
	}
}

func TestCompose_Order(t *testing.T) {
	var order []string
	tag := func(name string) store.Enhancer {
		return func(next store.Factory) store.Factory {
			return func() store.Store {
				order = append(order, name)
				return next()
			}
		}
	}

	factory := store.Compose(tag("outer"), nil, tag("inner"))(store.NewFactory(counterReducer, nil))
	factory()

	if diff := cmp.Diff([]string{"outer", "inner"}, order); diff != "" {
		t.Errorf("enhancer order mismatch (-want +got):\n%s", diff)
	}
}

func TestWithObserver(t *testing.T) {
	obs := &captureObserver{}
	factory := store.WithObserver(obs)(store.NewFactory(counterReducer, store.State{"count": 0}))
	s := factory()

	s.Subscribe(func() {})
	s.Dispatch(store.Action{Type: "inc"})

	if len(obs.events) != 2 {
		t.Fatalf("observed %d events, want 2", len(obs.events))
	}
	if obs.events[0].Type != store.EventSubscribe {
		t.Errorf("first event = %v, want %v", obs.events[0].Type, store.EventSubscribe)
	}
	if obs.events[1].Type != store.EventDispatch || obs.events[1].Data["action"] != "inc" {
		t.Errorf("second event = %+v, want dispatch of inc", obs.events[1])
	}
	if got := s.GetState()["count"]; got != 1 {
		t.Errorf("count = %v, want 1", got)
	}
}

func TestBatched_CoalescesNotifications(t *testing.T) {
	inner := store.New(counterReducer, store.State{"count": 0})
	b := store.NewBatched(inner)
	defer b.Close()

	notified := 0
	b.Subscribe(func() { notified++ })

	if b.Flush() {
		t.Error("Flush() without dispatch reported a notification")
	}

	b.Dispatch(store.Action{Type: "inc"})
	b.Dispatch(store.Action{Type: "inc"})
	b.Dispatch(store.Action{Type: "inc"})

	if notified != 0 {
		t.Fatalf("notified %d times before Flush, want 0", notified)
	}
	if !b.Pending() {
		t.Error("Pending() = false after dispatch")
	}
	if !b.Flush() {
		t.Error("Flush() = false after dispatch")
	}
	if notified != 1 {
		t.Errorf("notified %d times, want 1", notified)
	}
	if got := b.GetState()["count"]; got != 3 {
		t.Errorf("count = %v, want 3", got)
	}
}

func TestBatched_Close(t *testing.T) {
	inner := store.New(counterReducer, nil)
	b := store.NewBatched(inner)
	b.Close()

	b.Dispatch(store.Action{Type: "inc"})
	if b.Pending() {
		t.Error("Pending() = true after Close")
	}
	if got := inner.Subscribers(); got != 0 {
		t.Errorf("inner Subscribers() = %d, want 0", got)
	}
}
