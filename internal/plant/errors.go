package plant

import (
	"errors"
	"fmt"
)

// Sentinel errors for collection lookups.
var (
	ErrNotFound      = errors.New("plant not found")
	ErrDuplicateName = errors.New("a plant with this name already exists")
)

var (
	errRequired = errors.New("is required")
	errFuture   = errors.New("cannot be in the future")
)

// ValidationError reports bad user input for a single field.
type ValidationError struct {
	Field string // input field or JSON key
	Err   error  // underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
