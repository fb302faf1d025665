// Package form adds validation and submission to an observable store.
//
// A Form wraps a store.Store. Callers register validators against field
// paths and submit listeners, then call Validate or Submit:
//
//	f, err := form.New(ctx, store.New(form.Reducer, store.State{"name": ""}), form.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f.AddValidator("name", form.Predicate(func(v any) bool { return v != "" }, "required"))
//	f.AddSubmitListener(form.Notify(func(state store.State) { save(state) }), false)
//
//	f.Dispatch(form.Value("name", "Alice"))
//	submitted, err := f.Submit(ctx)
//
// # Validation
//
// Validate runs all validators concurrently and dispatches
// SetValidationError or ClearValidationError per field. It returns true only
// when every validator passed and never returns an error. Validators are
// built with Check, Async, Literal or Predicate, or by implementing
// Validator.
//
// # Submission
//
// Submit runs validation first. When it passes, every listener is called in
// registration order with its own deep copy of one snapshot of the form state,
// and Submit waits for all of them. With no listeners Submit does nothing,
// not even validation.
//
// # Submit on value
//
// Listeners registered with submitOnValue also run after a value change. A
// Dispatch of an ActionValue action arms a trigger; the next store
// notification consumes it and submits with those listeners on the
// notifying goroutine. Several value changes before one notification, as
// with a batched store, produce a single submission. Listener errors of
// these submissions go to the handler given by WithErrorHandler and are
// otherwise dropped.
//
// # Lifecycle
//
// Reset restores the form state captured by New; Clear empties it.
// Unsubscribe detaches the form from store notifications.
package form
