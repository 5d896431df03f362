// Package screens holds the console's per-screen view state. Every mutation is
// a named transition on a value: the receiver is left untouched and the new
// state is returned. Transitions never perform I/O.
package screens

import (
	"errors"
	"fmt"
)

// ErrAdvisorySent is returned for any edit attempted on a dispatched advisory.
var ErrAdvisorySent = errors.New("advisory has already been sent")

// ValidationError is a local input failure. No request is issued when one is returned.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Invalid builds a ValidationError from a format string.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
