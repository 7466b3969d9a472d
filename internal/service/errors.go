package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrValidation matches every error returned for rejected input.
var ErrValidation = errors.New("validation failed")

// ValidationError describes why an operation rejected its input.
// The collection is never modified when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var validate = validator.New()

// addInput is checked before a task is appended. NextID is the id the new
// task would get; it is zero or negative once the id space is used up.
type addInput struct {
	Text   string `validate:"required"`
	NextID int    `validate:"gt=0"`
}

// idInput is checked before a lookup by id.
type idInput struct {
	ID int `validate:"gt=0"`
}

// reasons maps a failing field to its message.
var reasons = map[string]string{
	"Text":   "task text must not be empty",
	"NextID": "task id space exhausted",
	"ID":     "task id must be a positive integer",
}

func check(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if reason, ok := reasons[fieldErrs[0].Field()]; ok {
			return &ValidationError{Reason: reason}
		}
	}
	return &ValidationError{Reason: err.Error()}
}

func notFound(id int) error {
	return &ValidationError{Reason: fmt.Sprintf("task with id %d does not exist", id)}
}
