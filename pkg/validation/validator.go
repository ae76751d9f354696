package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance. It caches struct metadata, so
// it must be shared.
var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes the first rule a validated struct broke.
type FieldError struct {
	Field string
	Tag   string
	Param string
	Value any
}

func (e *FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s: field is required", e.Field)
	case "min", "gte":
		return fmt.Sprintf("%s: value %v must be at least %s", e.Field, e.Value, e.Param)
	case "max", "lte":
		return fmt.Sprintf("%s: value %v must not exceed %s", e.Field, e.Value, e.Param)
	case "ltefield":
		return fmt.Sprintf("%s: value %v must not exceed %s", e.Field, e.Value, e.Param)
	default:
		return fmt.Sprintf("%s: validation failed (%s)", e.Field, e.Tag)
	}
}

// Struct validates v against its `validate` tags and returns the first
// failure as a *FieldError.
func Struct(v any) error {
	if v == nil {
		return errors.New("validation: nil value")
	}
	return formatValidationError(validate.Struct(v))
}

// formatValidationError converts validator errors to a *FieldError
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	first := validationErrs[0]
	return &FieldError{
		Field: first.Field(),
		Tag:   first.Tag(),
		Param: first.Param(),
		Value: first.Value(),
	}
}
