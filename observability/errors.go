package observability

import "errors"

var (
	// ErrUnknownObserver is returned by GetObserver for unregistered names.
	ErrUnknownObserver = errors.New("unknown observer")
	// ErrUnknownLevel is returned by ParseLevel.
	ErrUnknownLevel = errors.New("unknown level")
)
