// Package errs defines the coded errors the core service returns across its
// boundary. Controllers translate codes into HTTP statuses; nothing in the
// service layer panics or leaks driver errors upward untyped.
package errs

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidArgument = 1001
	CodeAlreadyExists   = 1002
	CodeNotFound        = 1003
	CodeUnauthorized    = 1004
	CodeStorage         = 1005
)

// Error carries a service error code, a user-facing message and an optional
// wrapped cause. It supports errors.Is/errors.As via Unwrap.
type Error struct {
	Code  int
	Msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches two coded errors by code, so sentinel comparisons like
// errors.Is(err, errs.ErrNotFound) work regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func New(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

func Newf(code int, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(err error, code int, msg string) *Error {
	return &Error{Code: code, Msg: msg, cause: err}
}

// Code extracts the service code from an error chain, defaulting to storage.
func Code(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeStorage
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidArgument = New(CodeInvalidArgument, "invalid argument")
	ErrAlreadyExists   = New(CodeAlreadyExists, "already exists")
	ErrNotFound        = New(CodeNotFound, "not found")
	ErrUnauthorized    = New(CodeUnauthorized, "unauthorized")
	ErrStorage         = New(CodeStorage, "storage error")
)
