package treatment

import (
	"errors"
	"fmt"
)

// Validation error codes
const (
	CodeNotNumeric   = "not_numeric"
	CodeOutOfRange   = "out_of_range"
	CodeMissingField = "missing_field"
)

// ValidationError is a field-scoped input error raised during guard
// checks. It blocks the transition and never reaches persistence.
type ValidationError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Code)
}

func ErrNotNumeric(field string) error {
	return ValidationError{Field: field, Code: CodeNotNumeric}
}

func ErrOutOfRange(field string) error {
	return ValidationError{Field: field, Code: CodeOutOfRange}
}

func ErrMissingField(field string) error {
	return ValidationError{Field: field, Code: CodeMissingField}
}

func AsValidation(err error) (ValidationError, bool) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return ValidationError{}, false
}
