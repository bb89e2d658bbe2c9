package middleware

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Feel-Joy/redux"
)

// Validatable actions carry their own acceptance checks. WithValidation
// consults them after the declarative tag pass.
type Validatable interface {
	Validate() error
}

// WithValidation returns a middleware that rejects invalid actions before
// they reach the rest of the chain. Struct actions are checked against their
// `validate` tags, then actions with a Validate method are asked directly.
// Anything else passes through untouched.
func WithValidation[S any]() redux.Middleware[S] {
	return func(api redux.MiddlewareAPI[S]) func(redux.DispatchFunc) redux.DispatchFunc {
		return func(next redux.DispatchFunc) redux.DispatchFunc {
			return func(action redux.Action) (redux.Action, error) {
				if err := validateTags(action); err != nil {
					return nil, fmt.Errorf("middleware: action %q rejected: %w", actionType(action), err)
				}
				if v, ok := action.(Validatable); ok {
					if err := v.Validate(); err != nil {
						return nil, fmt.Errorf("middleware: action %q rejected: %w", actionType(action), err)
					}
				}
				return next(action)
			}
		}
	}
}

var (
	validate *validator.Validate
	once     sync.Once
)

// sharedValidator returns the singleton validator instance.
func sharedValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields under their json names, matching the wire form.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// validateTags applies `validate` tags when the action is a struct or points
// at one, and is a no-op for anything else. Nil actions pass; the store
// rejects them on its own.
func validateTags(action redux.Action) error {
	rv := reflect.ValueOf(action)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	err := sharedValidator().Struct(rv.Interface())
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate action: %w", err)
	}

	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		parts = append(parts, fe.Field()+" "+reason(fe))
	}
	return fmt.Errorf("invalid fields: %s: %w", strings.Join(parts, "; "), err)
}

// reason turns a failed rule into a short human-readable clause.
func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}
