package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// formValidator wraps go-playground/validator. Field errors are reported under
// the struct's form tag so they line up with the submitted field names.
type formValidator struct {
	v *validator.Validate
}

// NewValidator returns the validator the form parsers run on.
func NewValidator() *formValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &formValidator{v: v}
}

// check validates i and converts failures into a domain.ValidationError.
// messages overrides the generated text per field.
func (fv *formValidator) check(i any, summary string, messages map[string]string) error {
	err := fv.v.Struct(i)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	ve := domain.NewValidationError(summary)
	for _, fe := range errs {
		field := fe.Field()
		if _, seen := ve.Fields[field]; seen {
			continue
		}
		if msg, ok := messages[field]; ok {
			ve.Add(field, msg)
			continue
		}
		ve.Add(field, fieldError(fe))
	}
	return ve
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "uuid":
		return field + " must be a valid id"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
