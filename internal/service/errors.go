package service

import (
	"errors"
	"fmt"
)

// ErrConflict is returned when an operation would violate a state rule the
// caller must resolve, such as deactivating the last active board.
var ErrConflict = errors.New("conflict")

// ValidationError reports a field-level input problem. The caller must
// correct the input; retrying unchanged cannot succeed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validationErr(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
