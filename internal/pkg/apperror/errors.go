package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a lifecycle failure
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindAuthorization Kind = "AUTHORIZATION"
	KindNotFound      Kind = "NOT_FOUND"
	KindStateConflict Kind = "STATE_CONFLICT"
	KindDependency    Kind = "DEPENDENCY"
	KindInternal      Kind = "INTERNAL"
)

// Sentinels for errors.Is matching by kind
var (
	ErrValidation    = &Error{Kind: KindValidation, Message: "invalid input"}
	ErrAuthorization = &Error{Kind: KindAuthorization, Message: "not permitted"}
	ErrNotFound      = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrStateConflict = &Error{Kind: KindStateConflict, Message: "invalid state for operation"}
	ErrDependency    = &Error{Kind: KindDependency, Message: "dependency unavailable"}
)

// Error is a domain error carrying its kind and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed input or an unsatisfiable request
func Validation(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

// Authorization reports an actor lacking the capability for an operation
func Authorization(format string, args ...interface{}) *Error {
	return newf(KindAuthorization, format, args...)
}

// NotFound reports a missing entity
func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

// StateConflict reports an operation invoked from the wrong lifecycle state
func StateConflict(format string, args ...interface{}) *Error {
	return newf(KindStateConflict, format, args...)
}

// Dependency wraps a failed call to the payment provider, locker hardware or another collaborator
func Dependency(err error, format string, args ...interface{}) *Error {
	e := newf(KindDependency, format, args...)
	e.Err = err
	return e
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error onto its response status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindStateConflict:
		return http.StatusConflict
	case KindDependency:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
