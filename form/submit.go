package form

import (
	"context"
	"fmt"

	"github.com/tailored-agentic-units/formkit/observability"
	"github.com/tailored-agentic-units/formkit/store"
)

// Submit validates the form and, when every validator passes, calls every
// registered listener with one snapshot of the form state, each listener
// getting its own copy of it. It reports
// whether the listeners ran. The error is the first listener failure as a
// *ListenerError; a failed validation is not an error.
func (f *Form) Submit(ctx context.Context) (bool, error) {
	return f.submitWithListeners(ctx, f.registry.submitListeners(false), TriggerManual)
}

func (f *Form) submitWithListeners(ctx context.Context, listeners []Listener, trigger string) (bool, error) {
	if len(listeners) == 0 {
		f.emit(ctx, EventSubmitSkipped, observability.LevelVerbose, "form.Submit", map[string]any{
			"trigger": trigger,
			"reason":  SkipNoListeners,
		})
		return false, nil
	}

	f.emit(ctx, EventSubmitStart, observability.LevelVerbose, "form.Submit", map[string]any{
		"trigger":   trigger,
		"listeners": len(listeners),
	})

	if !f.Validate(ctx) {
		f.emit(ctx, EventSubmitSkipped, observability.LevelInfo, "form.Submit", map[string]any{
			"trigger": trigger,
			"reason":  SkipInvalid,
		})
		return false, nil
	}

	snapshot := cloneState(f.FormState())

	var first error
	failed := 0
	for i, listener := range listeners {
		state := snapshot
		if i < len(listeners)-1 {
			state = cloneState(snapshot)
		}
		err := invoke(ctx, listener, state)
		if err == nil {
			continue
		}
		failed++
		f.emit(ctx, EventListenerError, observability.LevelError, "form.Submit", map[string]any{
			"trigger": trigger,
			"index":   i,
			"error":   err.Error(),
		})
		if first == nil {
			first = &ListenerError{Index: i, Trigger: trigger, Err: err}
		}
	}

	f.emit(ctx, EventSubmitComplete, observability.LevelInfo, "form.Submit", map[string]any{
		"trigger":   trigger,
		"listeners": len(listeners),
		"failed":    failed,
	})

	return true, first
}

func invoke(ctx context.Context, listener Listener, state store.State) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanic, r)
		}
	}()
	return listener.OnSubmit(ctx, state)
}
