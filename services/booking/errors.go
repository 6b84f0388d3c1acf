package booking

import (
	"errors"
	"fmt"
)

// Error codes returned by the booking service.
const (
	CodeValidation   = "validationError"
	CodeNotFound     = "notFound"
	CodeInvalidState = "invalidState"
	CodeUnauthorized = "unauthorized"
	CodeConflict     = "conflict"
	CodeDownstream   = "downstreamError"
)

// Error is a coded booking service error. The message is safe to surface to
// API callers.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the booking error code carried by err, or CodeDownstream
// for anything else.
func ErrorCode(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return CodeDownstream
}
