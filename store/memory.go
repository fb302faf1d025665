package store

import "sync"

// Memory is an in-memory Store.
//
// Reductions are serialized; subscribers are invoked synchronously after the
// reduction, outside the state lock, so a subscriber may dispatch again.
type Memory struct {
	reducer Reducer

	state State
	mu    sync.RWMutex

	subs subscribers
}

// New creates a Memory store seeded with initial.
// A nil reducer leaves the state untouched on every dispatch.
func New(reducer Reducer, initial State) *Memory {
	if reducer == nil {
		reducer = func(state State, _ Action) State { return state }
	}
	if initial == nil {
		initial = State{}
	}
	return &Memory{
		reducer: reducer,
		state:   initial,
	}
}

// NewFactory returns a Factory producing Memory stores with the given reducer
// and initial state.
func NewFactory(reducer Reducer, initial State) Factory {
	return func() Store {
		return New(reducer, initial)
	}
}

func (m *Memory) GetState() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Memory) Dispatch(action Action) {
	m.reduce(action)
	m.subs.notify()
}

func (m *Memory) reduce(action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.reducer(m.state, action)
}

func (m *Memory) Subscribe(listener func()) func() {
	return m.subs.add(listener)
}

// Subscribers returns the number of active subscriptions.
func (m *Memory) Subscribers() int {
	return m.subs.len()
}
