package form

import (
	"maps"

	"github.com/tailored-agentic-units/formkit/objectpath"
	"github.com/tailored-agentic-units/formkit/store"
)

// ErrorsKey is the form state key under which Reducer keeps validation
// errors, as a map from field path to error payload. The key is absent
// while no field has an error.
const ErrorsKey = "_errors"

// Reducer is the reference reducer for form state. Field values live at
// their paths; a nil value removes the field. Validation errors live under
// ErrorsKey. Use it directly as
// the store reducer, or mount it with store.Combine and set
// Config.ReducerName to the same key.
func Reducer(state store.State, action store.Action) store.State {
	if state == nil {
		state = store.State{}
	}

	switch action.Type {
	case ActionValue:
		payload, ok := action.Payload.(ValuePayload)
		if !ok {
			return state
		}
		if payload.Value == nil {
			if payload.Path == "" {
				return state
			}
			unset, _ := objectpath.Delete(state, payload.Path).(map[string]any)
			return unset
		}
		next, err := objectpath.Set(state, payload.Path, payload.Value)
		if err != nil {
			return state
		}
		if updated, ok := next.(map[string]any); ok {
			return updated
		}
		return state

	case ActionSetValidationError:
		payload, ok := action.Payload.(ValidationErrorPayload)
		if !ok {
			return state
		}
		errs := maps.Clone(Errors(state))
		if errs == nil {
			errs = make(map[string]any, 1)
		}
		errs[payload.Path] = payload.Error
		return withErrors(state, errs)

	case ActionClearValidationError:
		payload, ok := action.Payload.(ValidationErrorPayload)
		if !ok {
			return state
		}
		current := Errors(state)
		if _, exists := current[payload.Path]; !exists {
			return state
		}
		errs := maps.Clone(current)
		delete(errs, payload.Path)
		return withErrors(state, errs)

	case ActionSetState:
		replacement, _ := action.Payload.(store.State)
		if replacement == nil {
			return store.State{}
		}
		return replacement
	}

	return state
}

// Errors returns the validation errors recorded in a form state.
// The returned map must not be modified.
func Errors(state store.State) map[string]any {
	errs, _ := state[ErrorsKey].(map[string]any)
	return errs
}

func withErrors(state store.State, errs map[string]any) store.State {
	next := maps.Clone(state)
	if len(errs) == 0 {
		delete(next, ErrorsKey)
		return next
	}
	next[ErrorsKey] = errs
	return next
}
