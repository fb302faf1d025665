package drafts

import "errors"

// Sentinel errors for draft operations.
var (
	ErrNotFound    = errors.New("draft not found")
	ErrInvalidName = errors.New("invalid draft name")
	ErrLoadFailed  = errors.New("draft load failed")
	ErrSaveFailed  = errors.New("draft save failed")
)
