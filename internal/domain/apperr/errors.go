// Package apperr defines the error kinds the ship registry reports to callers.
//
// Two kinds are visible to clients: bad requests (malformed ids, missing or
// invalid fields) and missing records. Everything else is an internal fault.
// Use errors.Is with ErrBadRequest / ErrNotFound to classify an error.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrBadRequest classifies malformed or invalid client input.
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound classifies operations targeting a record that does not exist.
	ErrNotFound = errors.New("not found")
)

// BadRequestError is a client input error without a specific field.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

// Is implements errors.Is support
func (e *BadRequestError) Is(target error) bool { return target == ErrBadRequest }

// BadRequest creates a new BadRequestError.
func BadRequest(format string, args ...any) *BadRequestError {
	return &BadRequestError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool { return target == ErrBadRequest }

// InvalidField builds the error reported for a field outside its allowed range.
func InvalidField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Ship.%s is not valid.", field)}
}

// NotFoundError represents an error when a resource is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound creates a new NotFoundError.
func NotFound(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: fmt.Sprint(id)}
}

// FieldOf returns the offending field name when err is a ValidationError.
func FieldOf(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Field
	}
	return ""
}
