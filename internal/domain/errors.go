// Package domain holds the error kinds shared by the calculation modules.
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every failure returned by a calculation wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoSolution      = errors.New("no solution")
)

// CalcError describes why a calculation could not produce a value.
type CalcError struct {
	Kind    error  // ErrInvalidArgument or ErrNoSolution
	Field   string // offending request field, empty when not field specific
	Message string // caller-facing text, already names the field
	Err     error  // underlying cause, if any
}

func (e *CalcError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CalcError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the error kind of e.
func (e *CalcError) Is(target error) bool {
	return target == e.Kind
}

// InvalidArgument reports an out-of-domain input, e.g.
// InvalidArgument("rate", "must be positive") reads "rate must be positive".
func InvalidArgument(field, constraint string) error {
	return &CalcError{
		Kind:    ErrInvalidArgument,
		Field:   field,
		Message: fmt.Sprintf("%s %s", field, constraint),
	}
}

// Required reports a missing input using its caller-facing label, e.g.
// Required("fv", "Future value (FV)") reads "Future value (FV) is required".
func Required(field, label string) error {
	return &CalcError{
		Kind:    ErrInvalidArgument,
		Field:   field,
		Message: label + " is required",
	}
}

// NoSolution reports that the equation has no finite solution for the inputs.
func NoSolution(message string, cause error) error {
	return &CalcError{Kind: ErrNoSolution, Message: message, Err: cause}
}

// FieldOf returns the offending field of a calculation error, if any.
func FieldOf(err error) string {
	var calcErr *CalcError
	if errors.As(err, &calcErr) {
		return calcErr.Field
	}
	return ""
}

// HTTPStatus maps a calculation error to the response status code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrNoSolution):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
