package drafts

import (
	"context"

	"github.com/tailored-agentic-units/formkit/form"
	"github.com/tailored-agentic-units/formkit/store"
)

// Registrar is the part of *form.Form that Autosave needs.
type Registrar interface {
	AddSubmitListener(listener form.Listener, submitOnValue bool) form.Unregister
}

// Autosave saves the form state under name whenever a value change leaves
// the form valid, and on every successful Submit. Save errors surface as
// listener errors: from Submit directly, from value changes through
// form.WithErrorHandler.
func Autosave(r Registrar, s Store, name string) form.Unregister {
	return r.AddSubmitListener(form.OnSubmit(func(ctx context.Context, state store.State) error {
		return s.Save(ctx, name, state)
	}), true)
}
