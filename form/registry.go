package form

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Unregister removes the registration it was returned for.
// Calling it more than once has no further effect.
type Unregister func()

// ValidatorEntry is a registered validator.
type ValidatorEntry struct {
	ID        string
	Path      string
	Validator Validator
}

// ListenerEntry is a registered submit listener.
type ListenerEntry struct {
	ID            string
	Listener      Listener
	SubmitOnValue bool
}

// registry holds validators and listeners in registration order.
type registry struct {
	validators []ValidatorEntry
	listeners  []ListenerEntry
	mu         sync.RWMutex
}

func newRegistrationID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (r *registry) addValidator(path string, validator Validator) string {
	entry := ValidatorEntry{
		ID:        newRegistrationID(),
		Path:      path,
		Validator: validator,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators = append(r.validators, entry)
	return entry.ID
}

// removeValidatorID drops the single entry with id.
func (r *registry) removeValidatorID(id string) int {
	return r.filterValidators(func(e ValidatorEntry) bool {
		return e.ID == id
	})
}

// removeValidator drops every entry matching both path and validator.
func (r *registry) removeValidator(path string, validator Validator) int {
	return r.filterValidators(func(e ValidatorEntry) bool {
		return e.Path == path && identical(e.Validator, validator)
	})
}

func (r *registry) filterValidators(match func(ValidatorEntry) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]ValidatorEntry, 0, len(r.validators))
	for _, e := range r.validators {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	removed := len(r.validators) - len(kept)
	r.validators = kept
	return removed
}

func (r *registry) addListener(listener Listener, submitOnValue bool) string {
	entry := ListenerEntry{
		ID:            newRegistrationID(),
		Listener:      listener,
		SubmitOnValue: submitOnValue,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, entry)
	return entry.ID
}

// removeListener drops every entry whose listener is identical to listener;
// SubmitOnValue is not part of the match.
func (r *registry) removeListener(listener Listener) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]ListenerEntry, 0, len(r.listeners))
	for _, e := range r.listeners {
		if !identical(e.Listener, listener) {
			kept = append(kept, e)
		}
	}
	removed := len(r.listeners) - len(kept)
	r.listeners = kept
	return removed
}

func (r *registry) validatorEntries() []ValidatorEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]ValidatorEntry, len(r.validators))
	copy(entries, r.validators)
	return entries
}

func (r *registry) listenerEntries() []ListenerEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]ListenerEntry, len(r.listeners))
	copy(entries, r.listeners)
	return entries
}

// submitListeners returns listeners in registration order, optionally only
// those marked SubmitOnValue.
func (r *registry) submitListeners(onValueOnly bool) []Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listeners := make([]Listener, 0, len(r.listeners))
	for _, e := range r.listeners {
		if onValueOnly && !e.SubmitOnValue {
			continue
		}
		listeners = append(listeners, e.Listener)
	}
	return listeners
}

// identical compares two registered values by identity. Values of
// incomparable dynamic types never match.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
