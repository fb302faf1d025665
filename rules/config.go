package rules

import (
	"errors"
	"fmt"
	"math"

	"github.com/tailored-agentic-units/formkit/form"
)

// Rule names accepted in form.RuleConfig.Name. The camel-case spellings
// used by OpenAPI-derived schemas are accepted as aliases.
const (
	NameRequired  = "required"
	NameMinLength = "min_length"
	NameMaxLength = "max_length"
	NamePattern   = "pattern"
	NameOneOf     = "one_of"
	NameMin       = "min"
	NameMax       = "max"
	NameEmail     = "email"
)

var aliases = map[string]string{
	"minLength": NameMinLength,
	"maxLength": NameMaxLength,
	"oneOf":     NameOneOf,
	"enum":      NameOneOf,
}

// Registrar is the part of *form.Form that Register needs.
type Registrar interface {
	AddValidator(path string, validator form.Validator) form.Unregister
}

// FromConfig builds the validators declared for one field, in rule order.
func FromConfig(field form.FieldConfig) ([]form.Validator, error) {
	validators := make([]form.Validator, 0, len(field.Rules))
	for _, rc := range field.Rules {
		v, err := build(rc)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Path, err)
		}
		validators = append(validators, v)
	}
	return validators, nil
}

// Register builds the validators for every field and adds them to r, one
// All validator per field so that a field's rules settle on a single error.
// Nothing is added when any rule is invalid. The returned function removes
// everything Register added.
func Register(r Registrar, fields []form.FieldConfig) (form.Unregister, error) {
	built := make([][]form.Validator, len(fields))
	var errs []error
	for i, field := range fields {
		validators, err := FromConfig(field)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		built[i] = validators
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	unregisters := make([]form.Unregister, 0, len(fields))
	for i, field := range fields {
		if len(built[i]) == 0 {
			continue
		}
		unregisters = append(unregisters, r.AddValidator(field.Path, All(built[i]...)))
	}

	return func() {
		for _, unregister := range unregisters {
			unregister()
		}
	}, nil
}

func build(rc form.RuleConfig) (form.Validator, error) {
	name := rc.Name
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}

	switch name {
	case NameRequired:
		return Required(rc.Message), nil

	case NameEmail:
		return Email(rc.Message), nil

	case NameMinLength, NameMaxLength:
		n, ok := toInt(rc.Value)
		if !ok || n < 0 {
			return nil, fmt.Errorf("%w: %s needs a non-negative integer, got %v", ErrInvalidRule, name, rc.Value)
		}
		if name == NameMinLength {
			return MinLength(n, rc.Message), nil
		}
		return MaxLength(n, rc.Message), nil

	case NameMin, NameMax:
		bound, ok := toFloat(rc.Value)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs a number, got %v", ErrInvalidRule, name, rc.Value)
		}
		if name == NameMin {
			return Min(bound, rc.Message), nil
		}
		return Max(bound, rc.Message), nil

	case NamePattern:
		expr, ok := rc.Value.(string)
		if !ok || expr == "" {
			return nil, fmt.Errorf("%w: pattern needs an expression, got %v", ErrInvalidRule, rc.Value)
		}
		return Pattern(expr, rc.Message)

	case NameOneOf:
		allowed, ok := rc.Value.([]any)
		if !ok || len(allowed) == 0 {
			return nil, fmt.Errorf("%w: one_of needs a list of values, got %v", ErrInvalidRule, rc.Value)
		}
		return OneOf(allowed, rc.Message), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rc.Name)
}

// toInt accepts integers and whole floats, which is how JSON decodes them.
func toInt(value any) (int, bool) {
	f, ok := toFloat(value)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
