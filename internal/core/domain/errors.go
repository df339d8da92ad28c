package domain

import (
	"errors"
	"fmt"
)

// ValidationError rejects a malformed filter or argument before anything
// touches storage. Callers can fix it and retry.
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

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError wraps a transient infrastructure failure. Timeout marks
// deadline expiry so the gateway can surface a distinct code. The service
// never retries internally.
type StorageError struct {
	Err     error
	Timeout bool
}

func (e *StorageError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("storage timeout: %v", e.Err)
	}
	return fmt.Sprintf("storage error: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ConstraintViolation reports a storage-level CHECK failure. Only write
// paths (the seeding command) can hit it, but it stays distinguishable from
// generic storage failures.
type ConstraintViolation struct {
	Err error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation: %v", e.Err)
}

func (e *ConstraintViolation) Unwrap() error { return e.Err }

// ErrInvalidPageToken marks a malformed or stale pagination cursor. Safe to
// recover from by restarting pagination without a token.
var ErrInvalidPageToken = errors.New("invalid page token")
