// Package apperr defines the error taxonomy surfaced to API callers.
// Errors are reported once and never retried; the HTTP layer maps each
// kind to a status code.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports an operation targeting a nonexistent row.
type NotFoundError struct {
	Entity string
	RowID  int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found (%d)", e.Entity, e.RowID)
}

func NotFound(entity string, rowID int64) error {
	return &NotFoundError{Entity: entity, RowID: rowID}
}

// DuplicateError reports a unique constraint violation.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

func Duplicate(field, value string) error {
	return &DuplicateError{Field: field, Value: value}
}

// StorageError reports a backend that is unreachable or rejected a
// statement. The failed request is terminal; callers see the message as-is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsDuplicate(err error) bool {
	var e *DuplicateError
	return errors.As(err, &e)
}

func IsStorage(err error) bool {
	var e *StorageError
	return errors.As(err, &e)
}
