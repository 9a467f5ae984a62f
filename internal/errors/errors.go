package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Trail error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrMalformedDocument ErrorCode = "MALFORMED_DOCUMENT" // 500
	ErrIO                ErrorCode = "IO_ERROR"           // 500
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// TrailError represents a structured error with code, status, and details.
type TrailError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface. The bracketed code matches what the
// CLI prints, so wrapped errors and direct output read the same.
func (e *TrailError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *TrailError {
	return &TrailError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a record cannot be found.
func NewNotFound(identifier string) *TrailError {
	return &TrailError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("record not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewMalformedDocument creates an error for a memory document that cannot be
// parsed or fails schema validation. The document is never silently reset;
// the caller decides how to surface the condition.
func NewMalformedDocument(path string, err error) *TrailError {
	msg := "memory document is malformed"
	if err != nil {
		msg = fmt.Sprintf("memory document is malformed: %v", err)
	}
	return &TrailError{
		Code:    ErrMalformedDocument,
		Status:  500,
		Message: msg,
		Details: map[string]any{"path": path},
	}
}

// NewIO creates an error for a failed read or write of a file.
func NewIO(path string, err error) *TrailError {
	msg := "i/o error"
	if err != nil {
		msg = err.Error()
	}
	return &TrailError{
		Code:    ErrIO,
		Status:  500,
		Message: msg,
		Details: map[string]any{"path": path},
	}
}

// NewInternal creates a 500 error for unexpected internal errors. The
// message stays generic; the original error is kept in Details for logging.
func NewInternal(err error) *TrailError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &TrailError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error is (or wraps) a TrailError with the given code.
func Is(err error, code ErrorCode) bool {
	var tErr *TrailError
	if stderrors.As(err, &tErr) {
		return tErr.Code == code
	}
	return false
}
