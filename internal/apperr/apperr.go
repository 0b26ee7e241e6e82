// Package apperr defines the application error taxonomy. Client-input
// failures are decided at the call site that detects them; only genuinely
// unexpected faults become internal errors.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota
	KindDuplicate
	KindAuthFailed
	KindNotFound
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Duplicate(message string) *Error {
	return &Error{Kind: KindDuplicate, Message: message}
}

func AuthFailed(message string) *Error {
	return &Error{Kind: KindAuthFailed, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// StatusCode maps an error to the HTTP status it should be served with.
// Unknown errors are treated as internal.
func StatusCode(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation, KindDuplicate:
		return http.StatusBadRequest
	case KindAuthFailed:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show a client. Internal faults
// and unknown errors collapse to a generic message; detail stays server-side.
func PublicMessage(err error) string {
	var ae *Error
	if !errors.As(err, &ae) || ae.Kind == KindInternal {
		return "internal server error"
	}
	return ae.Message
}

// IsInternal reports whether err should be logged with full detail.
func IsInternal(err error) bool {
	var ae *Error
	return !errors.As(err, &ae) || ae.Kind == KindInternal
}
