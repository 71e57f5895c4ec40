package crud

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors returned by Controller, checked with errors.Is.
var (
	// ErrNotFound is returned when no entity exists for the requested id
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when creating an entity whose natural key is already taken
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is the sentinel every *ValidationError unwraps to
	ErrInvalidEntity = errors.New("invalid entity")
)

// Violation describes one failed constraint on a data object.
type Violation struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// ValidationError reports constraint violations on a data object.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidEntity, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidEntity
}

// identityViolation is raised by Put when the object's key does not match the path id.
func identityViolation(field string, expected, actual any) *ValidationError {
	return &ValidationError{Violations: []Violation{{
		Field:    field,
		Message:  fmt.Sprintf("missing primary key field in provided object or it does not match the requested id '%v'", expected),
		Expected: fmt.Sprint(expected),
		Actual:   fmt.Sprint(actual),
	}}}
}

// fromValidator converts validator field errors into a ValidationError.
// Errors of any other kind are returned untouched.
func fromValidator(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{
			Field:    fe.Field(),
			Message:  fmt.Sprintf("failed on the '%s' constraint", fe.Tag()),
			Expected: fe.Param(),
			Actual:   fmt.Sprint(fe.Value()),
		})
	}
	return &ValidationError{Violations: violations}
}
