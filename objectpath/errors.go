package objectpath

import "errors"

var (
	// ErrSyntax is returned for malformed path expressions.
	ErrSyntax = errors.New("objectpath: invalid path syntax")
	// ErrNotIndex is returned when a key segment is applied to a sequence.
	ErrNotIndex = errors.New("objectpath: non-numeric segment for sequence")
	// ErrNotContainer is returned when a path descends through a scalar.
	ErrNotContainer = errors.New("objectpath: value is not a container")
	// ErrOutOfRange is returned when Set would grow a sequence by more than
	// MaxGrowth elements.
	ErrOutOfRange = errors.New("objectpath: index out of range")
)
