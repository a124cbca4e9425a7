package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repositories and adapters.
var (
	// ErrNotFound is returned when a document or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoData is returned when a document exists but carries no readable data.
	ErrNoData = errors.New("document has no data")
	// ErrBulkDeleteUnsupported is returned when the store cannot delete a subtree in one operation.
	ErrBulkDeleteUnsupported = errors.New("bulk recursive delete unsupported")
)

// ErrorCode is the stable code of an error surfaced to callable clients.
type ErrorCode string

const (
	CodeInvalidArgument   ErrorCode = "invalid-argument"
	CodeUnauthenticated   ErrorCode = "unauthenticated"
	CodeNotFound          ErrorCode = "not-found"
	CodePermissionDenied  ErrorCode = "permission-denied"
	CodeResourceExhausted ErrorCode = "resource-exhausted"
	CodeInternal          ErrorCode = "internal"
)

// Error is a failure reported verbatim to the caller with a stable code and a
// human-readable message. Err optionally carries the underlying cause for logs.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// NewError returns an Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError returns an Error with the given code and message that unwraps to err.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the code carried by err, or CodeInternal when err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
