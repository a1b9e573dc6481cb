package errors

import (
	"fmt"
)

// ValidationError captures invalid command-line input, such as an unknown
// SEV generation selector.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DiagnosticError is the run-level error returned when the aggregate verdict
// is a failure. Per-probe detail is emitted through the reporter sink during
// the run; this error intentionally carries only the failure count.
type DiagnosticError struct {
	Failed int
}

// NewDiagnosticError constructs a DiagnosticError for a run with the given
// number of failed probes.
func NewDiagnosticError(failed int) error {
	return &DiagnosticError{Failed: failed}
}

func (e *DiagnosticError) Error() string {
	return "one or more diagnostic checks reported a failure"
}
