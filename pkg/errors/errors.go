// Package errors defines AppError, the coded error every sdfmine layer
// returns, and the helpers that classify an error chain by code.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const stackDepth = 32

// AppError carries a code, a message and optional detail and cause.  It
// supports errors.Is/As through Unwrap.
//
//	return errors.New(errors.ErrCodeLibraryReadFailed, "cannot open library").
//		WithDetail("path=" + path).WithCause(err)
type AppError struct {
	Code    ErrorCode
	Message string
	// Detail holds context such as a file path or registry number.
	Detail string
	Cause  error
	// Stack is recorded at construction and never printed by Error.
	Stack string
}

func newAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause, Stack: callers(3)}
}

func callers(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+1, pcs)
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for n > 0 {
		f, more := frames.Next()
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// Error renders "[CODE] message: detail: cause", skipping empty parts.
func (e *AppError) Error() string {
	parts := []string{fmt.Sprintf("[%s] %s", e.Code, e.Message)}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithDetail returns a copy with Detail set; a nil receiver stays nil.
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	c := *e
	c.Detail = detail
	return &c
}

// WithCause returns a copy with Cause set; a nil receiver stays nil.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	c := *e
	c.Cause = err
	return &c
}

func New(code ErrorCode, message string) *AppError {
	return newAppError(code, message, nil)
}

func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return newAppError(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches code and message to err and returns nil for a nil err.
// CodeUnknown keeps the code of the innermost AppError in err.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	if code == CodeUnknown {
		code = GetCode(err)
	}
	return newAppError(code, message, err)
}

func NotFound(message string) *AppError     { return newAppError(ErrCodeNotFound, message, nil) }
func InvalidParam(message string) *AppError { return newAppError(ErrCodeBadRequest, message, nil) }
func Internal(message string) *AppError     { return newAppError(ErrCodeInternal, message, nil) }

// IsCode reports whether any AppError in the chain of err has code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		var ae *AppError
		if !errors.As(err, &ae) {
			return false
		}
		if ae.Code == code {
			return true
		}
		err = ae.Cause
	}
	return false
}

// GetCode returns the code of the outermost AppError, CodeOK for nil and
// CodeUnknown for a chain without one.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// ExitCode maps err to a process exit status: 0 for nil, 2 for usage and
// configuration mistakes, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsCode(err, ErrCodeBadRequest), IsCode(err, ErrCodeConfigInvalid):
		return 2
	default:
		return 1
	}
}

//Personal.AI order the ending
