package rules

import "errors"

var (
	// ErrUnknownRule is returned for a rule name FromConfig does not know.
	ErrUnknownRule = errors.New("rules: unknown rule")
	// ErrInvalidRule is returned when a rule's value cannot configure it.
	ErrInvalidRule = errors.New("rules: invalid rule value")
)
