package form

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tailored-agentic-units/formkit/objectpath"
	"github.com/tailored-agentic-units/formkit/observability"
)

// Validate runs every registered validator concurrently and reports whether
// all of them passed. Each validator reads its value from the form state at
// the moment it starts. A passing field gets ClearValidationError
// dispatched, a failing field SetValidationError with the failure payload.
// Validate never fails; with no validators it returns true.
func (f *Form) Validate(ctx context.Context) bool {
	entries := f.registry.validatorEntries()

	f.emit(ctx, EventValidateStart, observability.LevelVerbose, "form.Validate", map[string]any{
		"validators":      len(entries),
		"max_concurrency": f.config.MaxConcurrency,
	})

	results := make([]bool, len(entries))

	var g errgroup.Group
	if f.config.MaxConcurrency > 0 {
		g.SetLimit(f.config.MaxConcurrency)
	}
	for i, entry := range entries {
		g.Go(func() error {
			results[i] = f.runValidator(ctx, entry)
			return nil
		})
	}
	_ = g.Wait()

	valid := true
	failed := 0
	for _, ok := range results {
		if !ok {
			valid = false
			failed++
		}
	}

	f.emit(ctx, EventValidateComplete, observability.LevelInfo, "form.Validate", map[string]any{
		"validators": len(entries),
		"failed":     failed,
		"valid":      valid,
	})

	return valid
}

func (f *Form) runValidator(ctx context.Context, entry ValidatorEntry) bool {
	start := time.Now()
	value, _ := objectpath.Get(f.FormState(), entry.Path)

	outcome := evaluate(ctx, entry.Validator, value)
	if outcome.OK() {
		f.Dispatch(ClearValidationError(entry.Path))
	} else {
		f.Dispatch(SetValidationError(entry.Path, outcome.Payload()))
	}

	f.emit(ctx, EventValidatorComplete, observability.LevelVerbose, "form.Validate", map[string]any{
		"path":     entry.Path,
		"valid":    outcome.OK(),
		"duration": time.Since(start),
	})

	return outcome.OK()
}

// evaluate treats a panicking validator as failing with the recovered value.
func evaluate(ctx context.Context, validator Validator, value any) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Failure(r)
		}
	}()
	return validator.Validate(ctx, value)
}
