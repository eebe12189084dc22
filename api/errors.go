// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-tcp.
// Errors carry an ErrorCode so callers branch on the kind of failure
// (validation, system, inactive connection) rather than on message text.

package api

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	// ErrCodeInvalidArgument marks validation failures raised before any OS resource is touched.
	ErrCodeInvalidArgument
	// ErrCodeSystem marks a failing system call; the errno is available through Unwrap.
	ErrCodeSystem
	// ErrCodeInactiveConnection marks I/O attempted on a connection without an open socket.
	ErrCodeInactiveConnection
	ErrCodeNotSupported
	ErrCodeUnknown
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid argument"
	case ErrCodeSystem:
		return "system error"
	case ErrCodeInactiveConnection:
		return "inactive connection"
	case ErrCodeNotSupported:
		return "not supported"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Any *Error with the same code matches.
var (
	ErrInvalidArgument    = &Error{Code: ErrCodeInvalidArgument, Message: "invalid argument"}
	ErrSystem             = &Error{Code: ErrCodeSystem, Message: "system error"}
	ErrInactiveConnection = &Error{Code: ErrCodeInactiveConnection, Message: "connection is inactive"}
	ErrNotSupported       = &Error{Code: ErrCodeNotSupported, Message: "operation not supported"}
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Op      string // failing operation, e.g. "bind" or "send message"
	Message string
	Err     error // underlying cause (usually a unix.Errno)
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// InvalidArgument builds a validation error.
func InvalidArgument(format string, args ...any) *Error {
	return NewError(ErrCodeInvalidArgument, fmt.Sprintf(format, args...))
}

// SystemError wraps a failing system call.
func SystemError(op string, err error) *Error {
	e := NewError(ErrCodeSystem, "system call failed")
	e.Op = op
	e.Err = err
	return e
}

// InactiveConnection builds the protocol-state error for the named operation.
func InactiveConnection(op string) *Error {
	e := NewError(ErrCodeInactiveConnection, "connection is inactive")
	e.Op = op
	return e
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf returns the ErrorCode carried by err, ErrCodeOK for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeUnknown
}
