package form

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/tiendc/go-deepcopy"

	"github.com/tailored-agentic-units/formkit/observability"
	"github.com/tailored-agentic-units/formkit/store"
)

// Form decorates a store with validation and submission.
//
// Form satisfies store.Store itself: GetState and Subscribe pass through to
// the underlying store and Dispatch is intercepted. The embedded Store gives
// raw access to the underlying store; dispatching through it bypasses
// value-change detection.
type Form struct {
	store.Store

	config   Config
	observer observability.Observer
	onError  func(error)
	ctx      context.Context

	registry *registry
	trigger  *trigger
	initial  store.State

	unsubscribe     func()
	unsubscribeOnce sync.Once
}

// Option customizes a Form beyond its Config.
type Option func(*Form)

// WithObserver overrides the observer named by Config.Observer.
func WithObserver(observer observability.Observer) Option {
	return func(f *Form) {
		if observer != nil {
			f.observer = observer
		}
	}
}

// WithErrorHandler receives listener errors from value-triggered
// submissions, which have no caller to return them to.
func WithErrorHandler(fn func(error)) Option {
	return func(f *Form) {
		f.onError = fn
	}
}

// New decorates base. The form state visible at this point is captured as
// the snapshot Reset restores. ctx is passed to validators and listeners
// run by value-triggered submissions.
func New(ctx context.Context, base store.Store, cfg Config, opts ...Option) (*Form, error) {
	if base == nil {
		return nil, ErrNilStore
	}
	if ctx == nil {
		ctx = context.Background()
	}

	merged := DefaultConfig()
	merged.Merge(&cfg)

	observer, err := observability.GetObserver(merged.Observer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}

	f := &Form{
		Store:    base,
		config:   merged,
		observer: observer,
		ctx:      ctx,
		registry: &registry{},
		trigger:  newTrigger(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.initial = cloneState(f.FormState())
	f.unsubscribe = base.Subscribe(f.onNotify)

	f.emit(ctx, EventCreate, observability.LevelVerbose, "form.New", map[string]any{
		"reducer_name": merged.ReducerName,
		"initial_keys": len(f.initial),
	})

	return f, nil
}

// Enhance creates the underlying store from factory and decorates it.
// The factory may itself be the product of store.Compose.
func Enhance(ctx context.Context, factory store.Factory, cfg Config, opts ...Option) (*Form, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	return New(ctx, factory(), cfg, opts...)
}

// ReducerName reports the state slice treated as form state.
func (f *Form) ReducerName() string {
	return f.config.ReducerName
}

// FormState returns the current form state: the ReducerName slice of the
// store state, or the whole state when ReducerName is empty. A missing or
// non-map slice yields nil.
func (f *Form) FormState() store.State {
	state := f.Store.GetState()
	if f.config.ReducerName == "" {
		return state
	}
	slice, _ := state[f.config.ReducerName].(store.State)
	return slice
}

// Dispatch forwards action to the underlying store, arming value-triggered
// submission first when action is a value change.
func (f *Form) Dispatch(action store.Action) {
	if action.Type == ActionValue && f.trigger.arm() {
		f.emit(f.ctx, EventTriggerArmed, observability.LevelVerbose, "form.Dispatch", nil)
	}
	f.Store.Dispatch(action)
}

// AddValidator registers validator for the value at path. The returned
// function removes exactly this registration.
func (f *Form) AddValidator(path string, validator Validator) Unregister {
	id := f.registry.addValidator(path, validator)

	var once sync.Once
	return func() {
		once.Do(func() { f.registry.removeValidatorID(id) })
	}
}

// RemoveValidator removes every registration of validator at path.
func (f *Form) RemoveValidator(path string, validator Validator) {
	f.registry.removeValidator(path, validator)
}

// AddSubmitListener registers listener. With submitOnValue set it also runs
// after value changes, subject to validation. The returned function removes
// every registration of listener.
func (f *Form) AddSubmitListener(listener Listener, submitOnValue bool) Unregister {
	f.registry.addListener(listener, submitOnValue)

	return func() {
		f.registry.removeListener(listener)
	}
}

// RemoveSubmitListener removes every registration of listener.
func (f *Form) RemoveSubmitListener(listener Listener) {
	f.registry.removeListener(listener)
}

// Validators returns the registered validators in registration order.
func (f *Form) Validators() []ValidatorEntry {
	return f.registry.validatorEntries()
}

// SubmitListeners returns the registered listeners in registration order.
func (f *Form) SubmitListeners() []ListenerEntry {
	return f.registry.listenerEntries()
}

// Reset replaces the form state with the snapshot taken by New.
func (f *Form) Reset() {
	f.Dispatch(SetState(cloneState(f.initial)))
	f.emit(f.ctx, EventReset, observability.LevelInfo, "form.Reset", nil)
}

// Clear replaces the form state with an empty state.
func (f *Form) Clear() {
	f.Dispatch(SetState(store.State{}))
	f.emit(f.ctx, EventClear, observability.LevelInfo, "form.Clear", nil)
}

// Unsubscribe detaches the form from store notifications; value changes no
// longer trigger submission. Safe to call more than once.
func (f *Form) Unsubscribe() {
	f.unsubscribeOnce.Do(func() {
		f.unsubscribe()
		f.emit(f.ctx, EventUnsubscribe, observability.LevelVerbose, "form.Unsubscribe", nil)
	})
}

// onNotify runs for every store notification. A single armed trigger fires
// the submit-on-value listeners once, however many value changes led to it.
// The submission runs on the notifying goroutine, so with a store that
// notifies inside Dispatch it has finished when Dispatch returns.
func (f *Form) onNotify() {
	if !f.trigger.consume() {
		return
	}

	listeners := f.registry.submitListeners(true)
	if len(listeners) == 0 {
		return
	}
	f.emit(f.ctx, EventTriggerFired, observability.LevelVerbose, "form.onNotify", map[string]any{
		"listeners": len(listeners),
	})

	if _, err := f.submitWithListeners(f.ctx, listeners, TriggerValue); err != nil && f.onError != nil {
		f.onError(err)
	}
}

func (f *Form) emit(ctx context.Context, eventType observability.EventType, level observability.Level, source string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	f.observer.OnEvent(ctx, observability.Event{
		Type:      eventType,
		Level:     level,
		Timestamp: time.Now(),
		Source:    source,
		Data:      data,
	})
}

// cloneState deep-copies state so snapshots never share containers with the
// store or with callers.
func cloneState(state store.State) store.State {
	if state == nil {
		return store.State{}
	}
	var out store.State
	if err := deepcopy.Copy(&out, state); err != nil {
		return maps.Clone(state)
	}
	return out
}
