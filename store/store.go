// Package store defines the observable state container contract consumed by
// the form engine, along with a goroutine-safe in-memory implementation.
//
// A Store holds a single State value that is replaced, never mutated, by a
// Reducer whenever an Action is dispatched. Subscribers are notified after
// every dispatch. Factories and Enhancers compose store construction so that
// behaviour (logging, batching, form orchestration) can be layered around a
// base store without the layers knowing about each other.
package store

// State is the root value held by a store. Reducers must treat it as
// immutable and return a new map when anything changes.
type State = map[string]any

// Action describes a state change. Type identifies the change; Payload
// carries whatever the reducer for that type expects.
type Action struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Store is the minimal observable container contract.
type Store interface {
	// GetState returns the current state snapshot.
	GetState() State
	// Dispatch reduces action into the state and notifies subscribers.
	Dispatch(action Action)
	// Subscribe registers listener for post-dispatch notifications and
	// returns a function that removes it.
	Subscribe(listener func()) (unsubscribe func())
}

// Reducer computes the next state for an action.
type Reducer func(state State, action Action) State

// Factory creates a Store.
type Factory func() Store

// Enhancer wraps a Factory to decorate the stores it produces.
type Enhancer func(next Factory) Factory

// Compose chains enhancers so that the first one is outermost:
// Compose(a, b)(f) is equivalent to a(b(f)).
func Compose(enhancers ...Enhancer) Enhancer {
	return func(next Factory) Factory {
		for i := len(enhancers) - 1; i >= 0; i-- {
			if enhancers[i] != nil {
				next = enhancers[i](next)
			}
		}
		return next
	}
}

// Combine builds a reducer that delegates each top-level key of the state to
// its own reducer. Every action is offered to every slice reducer.
func Combine(reducers map[string]Reducer) Reducer {
	return func(state State, action Action) State {
		next := make(State, len(reducers))
		for key, value := range state {
			next[key] = value
		}
		for key, reducer := range reducers {
			slice, _ := state[key].(State)
			next[key] = reducer(slice, action)
		}
		return next
	}
}
