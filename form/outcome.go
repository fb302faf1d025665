package form

import (
	"context"
	"errors"
	"fmt"
)

// Outcome is the result of validating one field: either success, or failure
// carrying an error payload that is stored as the field's validation error.
// The zero Outcome is a success.
type Outcome struct {
	failed  bool
	payload any
}

// Success returns a passing Outcome.
func Success() Outcome {
	return Outcome{}
}

// Failure returns a failing Outcome carrying payload.
func Failure(payload any) Outcome {
	return Outcome{failed: true, payload: payload}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return !o.failed
}

// Payload returns the failure payload; it is nil for a success.
func (o Outcome) Payload() any {
	return o.payload
}

func (o Outcome) String() string {
	if o.OK() {
		return "success"
	}
	return fmt.Sprintf("failure(%v)", o.payload)
}

// Validator checks the value found at a registered path. Validate may block;
// every registered validator runs on its own goroutine during Validate.
//
// RemoveValidator matches validators by identity, so implementations should
// be pointer types. The constructors below all return pointers.
type Validator interface {
	Validate(ctx context.Context, value any) Outcome
}

// FailureError lets asynchronous validators fail with an arbitrary payload
// instead of the error value itself.
type FailureError struct {
	Payload any
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Payload)
}

// Fail returns an error that Async validators translate into
// Failure(payload).
func Fail(payload any) error {
	return &FailureError{Payload: payload}
}

type checkValidator struct {
	fn func(value any) Outcome
}

func (v *checkValidator) Validate(_ context.Context, value any) Outcome {
	return v.fn(value)
}

// Check adapts a synchronous function returning an Outcome.
func Check(fn func(value any) Outcome) Validator {
	return &checkValidator{fn: fn}
}

type asyncValidator struct {
	fn func(ctx context.Context, value any) error
}

func (v *asyncValidator) Validate(ctx context.Context, value any) Outcome {
	err := v.fn(ctx, value)
	if err == nil {
		return Success()
	}
	var failure *FailureError
	if errors.As(err, &failure) {
		return Failure(failure.Payload)
	}
	return Failure(err)
}

// Async adapts a blocking computation such as a remote uniqueness check.
// A nil error is a success; an error created by Fail fails with its payload;
// any other error fails with the error itself.
func Async(fn func(ctx context.Context, value any) error) Validator {
	return &asyncValidator{fn: fn}
}

type literalValidator struct {
	fn func(value any) any
}

func (v *literalValidator) Validate(_ context.Context, value any) Outcome {
	result := v.fn(value)
	if ok, isBool := result.(bool); isBool && ok {
		return Success()
	}
	return Failure(result)
}

// Literal adapts a function in the literal style: returning true passes,
// returning anything else fails with that value as the payload.
func Literal(fn func(value any) any) Validator {
	return &literalValidator{fn: fn}
}

type predicateValidator struct {
	fn      func(value any) bool
	payload any
}

func (v *predicateValidator) Validate(_ context.Context, value any) Outcome {
	if v.fn(value) {
		return Success()
	}
	return Failure(v.payload)
}

// Predicate adapts a boolean check that fails with a fixed payload.
func Predicate(fn func(value any) bool, payload any) Validator {
	return &predicateValidator{fn: fn, payload: payload}
}
