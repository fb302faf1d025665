// Package drafts persists unsubmitted form states so they survive restarts.
//
// A draft is a form state saved under a name. FileStore keeps one JSON
// document per draft; Autosave registers a submit-on-value listener that
// writes the form state whenever a value change leaves the form valid.
package drafts

import (
	"context"

	"github.com/tailored-agentic-units/formkit/store"
)

// Store saves and restores named drafts. Names are /-separated relative
// paths such as "signup/alice".
type Store interface {
	// List returns every draft name, sorted.
	List(ctx context.Context) ([]string, error)
	// Load returns the draft saved under name.
	Load(ctx context.Context, name string) (store.State, error)
	// Save creates or overwrites the draft saved under name.
	Save(ctx context.Context, name string, state store.State) error
	// Delete removes the draft. A missing draft is not an error.
	Delete(ctx context.Context, name string) error
}
