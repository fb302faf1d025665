package form

import (
	"errors"
	"fmt"
)

var (
	// ErrNilStore is returned when no underlying store is available.
	ErrNilStore = errors.New("form: nil store")
	// ErrNilFactory is returned by Enhance for a nil factory.
	ErrNilFactory = errors.New("form: nil store factory")
	// ErrListenerPanic wraps a value recovered from a panicking listener.
	ErrListenerPanic = errors.New("form: submit listener panicked")
)

// ListenerError reports the first submit listener that failed during a
// submission. Later listeners still ran.
type ListenerError struct {
	// Index is the listener's position in the submission, in registration order.
	Index int
	// Trigger is TriggerManual or TriggerValue.
	Trigger string
	Err     error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("submit listener %d failed (%s): %v", e.Index, e.Trigger, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}
