package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of caller-induced failures raised by the domain services.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindForbidden
	KindInvalidInput
	KindInvalidState
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidInput:
		return "invalid_input"
	case KindInvalidState:
		return "invalid_state"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrInvalidInput = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrInvalidState = &Error{Kind: KindInvalidState, Message: "invalid state"}

	// ErrInvalidCredentials is returned by login for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned by the user store when the unique email index rejects an insert.
	ErrEmailTaken = errors.New("email already exists")
)

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...any) error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the ErrorKind carried by err, or KindUnknown for store and other
// unexpected failures.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
