// Package rules provides built-in field validators for package form and
// builds them from declarative field configuration.
//
// Every rule other than Required passes on an absent value (nil or the
// empty string), so rules compose: combine Required with a length or
// pattern rule to make a field both mandatory and constrained.
package rules

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tailored-agentic-units/formkit/form"
)

// Default failure payloads, used when a rule is given an empty message.
const (
	MessageRequired = "required"
	MessagePattern  = "does not match required pattern"
	MessageEmail    = "invalid email address"
)

// validate is safe for concurrent use and caches parsed tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// satisfies reports whether value passes the validator tag. Callers check
// the value's kind first; validator panics on kinds a tag does not support.
func satisfies(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}

func param(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type rule struct {
	check   func(value any) bool
	message string
}

func (r *rule) Validate(_ context.Context, value any) form.Outcome {
	if r.check(value) {
		return form.Success()
	}
	return form.Failure(r.message)
}

func newRule(message, fallback string, check func(any) bool) form.Validator {
	if message == "" {
		message = fallback
	}
	return &rule{check: check, message: message}
}

// optional wraps check so absent values pass.
func optional(check func(any) bool) func(any) bool {
	return func(value any) bool {
		if absent(value) {
			return true
		}
		return check(value)
	}
}

func absent(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// Required fails on nil, blank strings and empty lists or objects.
func Required(message string) form.Validator {
	return newRule(message, MessageRequired, func(value any) bool {
		switch v := value.(type) {
		case nil:
			return false
		case string:
			return satisfies(strings.TrimSpace(v), "required")
		case []any, map[string]any:
			return satisfies(v, "min=1")
		}
		return true
	})
}

// MinLength requires at least n characters, list items or object keys.
func MinLength(n int, message string) form.Validator {
	return newRule(message, fmt.Sprintf("min length %d", n), optional(func(value any) bool {
		return hasLength(value) && satisfies(value, fmt.Sprintf("min=%d", n))
	}))
}

// MaxLength allows at most n characters, list items or object keys.
func MaxLength(n int, message string) form.Validator {
	return newRule(message, fmt.Sprintf("max length %d", n), optional(func(value any) bool {
		return hasLength(value) && satisfies(value, fmt.Sprintf("max=%d", n))
	}))
}

// hasLength reports whether value is measured by length: characters for
// strings, items for lists and keys for objects.
func hasLength(value any) bool {
	switch value.(type) {
	case string, []any, map[string]any:
		return true
	}
	return false
}

// Pattern requires string values to match expr. The expression is not
// anchored; use ^ and $ to match the whole value.
func Pattern(expr, message string) (form.Validator, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidRule, expr, err)
	}
	return newRule(message, MessagePattern, optional(func(value any) bool {
		s, ok := value.(string)
		return ok && re.MatchString(s)
	})), nil
}

// OneOf requires the value to equal one of allowed. Numbers compare by
// value regardless of their Go type. Allowed values may contain spaces or
// be of mixed types, which the validator oneof tag cannot express.
func OneOf(allowed []any, message string) form.Validator {
	return newRule(message, fmt.Sprintf("must be one of %v", allowed), optional(func(value any) bool {
		for _, candidate := range allowed {
			if equal(value, candidate) {
				return true
			}
		}
		return false
	}))
}

func equal(a, b any) bool {
	if x, ok := toFloat(a); ok {
		y, ok := toFloat(b)
		return ok && x == y
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Min requires a number no smaller than bound.
func Min(bound float64, message string) form.Validator {
	return newRule(message, fmt.Sprintf("min %v", bound), optional(func(value any) bool {
		n, ok := toFloat(value)
		return ok && satisfies(n, "gte="+param(bound))
	}))
}

// Max requires a number no larger than bound.
func Max(bound float64, message string) form.Validator {
	return newRule(message, fmt.Sprintf("max %v", bound), optional(func(value any) bool {
		n, ok := toFloat(value)
		return ok && satisfies(n, "lte="+param(bound))
	}))
}

// Range requires a number within [lo, hi].
func Range(lo, hi float64, message string) form.Validator {
	return newRule(message, fmt.Sprintf("must be between %v and %v", lo, hi), optional(func(value any) bool {
		n, ok := toFloat(value)
		return ok && satisfies(n, "gte="+param(lo)+",lte="+param(hi))
	}))
}

// Email requires a bare address such as "ada@example.com". Display-name
// forms like "Ada <ada@example.com>" are rejected.
func Email(message string) form.Validator {
	return newRule(message, MessageEmail, optional(func(value any) bool {
		s, ok := value.(string)
		return ok && satisfies(s, "email")
	}))
}

type all struct {
	validators []form.Validator
}

func (a *all) Validate(ctx context.Context, value any) form.Outcome {
	for _, v := range a.validators {
		if outcome := v.Validate(ctx, value); !outcome.OK() {
			return outcome
		}
	}
	return form.Success()
}

// All runs validators in order and fails with the first failure.
// Validators registered separately on one path each set or clear that
// path's error, and the last one to finish wins.
func All(validators ...form.Validator) form.Validator {
	return &all{validators: validators}
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
