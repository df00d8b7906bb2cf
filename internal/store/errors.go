package store

import (
	"errors"
	"fmt"
	"strings"
)

// CorruptDataError reports a data file that exists but cannot be used:
// invalid JSON, a shape that fails the schema, or duplicate names.
type CorruptDataError struct {
	Path string
	Errs []error

	// Backup is the copy Open made of the file, empty when none was
	// written. BackupErr holds the reason a copy could not be made.
	Backup    string
	BackupErr error
}

func (e *CorruptDataError) Error() string {
	if len(e.Errs) == 0 {
		return fmt.Sprintf("corrupt data file %s", e.Path)
	}
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("corrupt data file %s: %s", e.Path, strings.Join(msgs, "; "))
}

// Unwrap returns the individual causes.
func (e *CorruptDataError) Unwrap() []error {
	return e.Errs
}

// SaveError reports a failure to write the data file.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *SaveError) Unwrap() error {
	return e.Err
}

// IsCorrupt reports whether err is, or wraps, a *CorruptDataError.
func IsCorrupt(err error) bool {
	var ce *CorruptDataError
	return errors.As(err, &ce)
}

// IsSaveError reports whether err is, or wraps, a *SaveError.
func IsSaveError(err error) bool {
	var se *SaveError
	return errors.As(err, &se)
}

// FieldError locates a problem inside the data file.
type FieldError struct {
	Path string // JSON path, e.g. "[2].water_interval_days"
	Err  error
}

func (e *FieldError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}
