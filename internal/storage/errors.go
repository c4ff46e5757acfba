package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means an id or email has no matching row.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint was violated
	// (duplicate user email, second active order for a user).
	ErrConflict = errors.New("conflict")
)

// ValidationError reports a referenced foreign key or field constraint
// that is not satisfied. Recoverable by the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
