package style

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed property value: wrong token count in
// a shorthand, an unrecognized border-style keyword, or a value of an
// unsupported type. Validation failures abort the whole property update
// and are surfaced to the caller; they are never retried.
type ValidationError struct {
	// Key is the property key being set.
	Key string

	// Value is the offending raw value.
	Value any

	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("style: invalid value %v for %q: %s", e.Value, e.Key, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func errValidation(key string, value any, reason string) error {
	return &ValidationError{Key: key, Value: value, Reason: reason}
}
