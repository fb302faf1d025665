package form

import "github.com/tailored-agentic-units/formkit/store"

// Action types understood by Reducer. ActionValue is the only type that arms
// value-triggered submission; ActionSetState must stay distinct from it.
const (
	ActionValue                = "form/value"
	ActionSetValidationError   = "form/set-validation-error"
	ActionClearValidationError = "form/clear-validation-error"
	ActionSetState             = "form/set-state"
)

// ValuePayload is carried by ActionValue.
type ValuePayload struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// ValidationErrorPayload is carried by ActionSetValidationError and
// ActionClearValidationError. Error is unset when clearing.
type ValidationErrorPayload struct {
	Path  string `json:"path"`
	Error any    `json:"error,omitempty"`
}

// Value sets the field at path to value. A nil value unsets the field.
func Value(path string, value any) store.Action {
	return store.Action{
		Type:    ActionValue,
		Payload: ValuePayload{Path: path, Value: value},
	}
}

// SetValidationError records err as the validation error of path.
func SetValidationError(path string, err any) store.Action {
	return store.Action{
		Type:    ActionSetValidationError,
		Payload: ValidationErrorPayload{Path: path, Error: err},
	}
}

// ClearValidationError removes the validation error of path.
func ClearValidationError(path string) store.Action {
	return store.Action{
		Type:    ActionClearValidationError,
		Payload: ValidationErrorPayload{Path: path},
	}
}

// SetState replaces the whole form state.
func SetState(state store.State) store.Action {
	return store.Action{
		Type:    ActionSetState,
		Payload: state,
	}
}
