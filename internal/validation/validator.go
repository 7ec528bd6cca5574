// Package validation provides input validation using the validator/v10
// library, converting failures to the runtime's typed validation errors.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperr "github.com/shelfmarkapp/shelfmark-client/internal/errors"
)

// Validator wraps go-playground/validator with typed error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for the runtime's payloads.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages, matching the wire format the
	// server would complain about.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	// Review text must survive whitespace trimming; "   " is not a review.
	//nolint:errcheck // registration only fails for nil funcs
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a typed validation error with
// per-field details, or nil.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// formatError converts validator errors to typed errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !apperr.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	return apperr.ValidationWithDetails("validation failed", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be " + e.Param() + " or less"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return fmt.Sprintf("is invalid (%s)", e.Tag())
	}
}
