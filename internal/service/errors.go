package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for the named failure modes. Handlers map these to HTTP
// statuses; nothing is retried automatically.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateSKU    = errors.New("sku already exists")
	ErrAlreadySold     = errors.New("item is already sold")
	ErrAlreadyDisposed = errors.New("asset already disposed")
	ErrItemLocked      = errors.New("item is locked and cannot be edited")
	ErrDuplicateName   = errors.New("name already exists")
)

// ValidationError reports a single bad, missing, or malformed field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// LinkedWriteError reports that the paired transaction write of a multi-write
// unit failed. The whole unit is rolled back before this is returned.
type LinkedWriteError struct {
	Op  string
	Err error
}

func (e *LinkedWriteError) Error() string {
	return fmt.Sprintf("%s: linked transaction write failed: %v", e.Op, e.Err)
}

func (e *LinkedWriteError) Unwrap() error { return e.Err }
