package apperr

import "errors"

// ValidationError means the caller supplied data that violates a business
// rule. It is recoverable: report the reason to the caller, never retry.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validation builds a ValidationError with the given reason.
func Validation(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RangeError means a value exceeded the fixed-point representation's
// range. Not expected under normal amounts; fatal, non-recoverable.
type RangeError struct {
	Value string
}

func (e *RangeError) Error() string {
	return "value out of range: " + e.Value
}

// IsRange reports whether err is (or wraps) a RangeError.
func IsRange(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}
