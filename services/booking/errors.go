package booking

import (
	"errors"
	"net/http"
)

// Error kinds. Every error returned by the booking service wraps exactly one.
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrPaymentIncomplete = errors.New("payment incomplete")
	ErrExpired           = errors.New("expired")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrDependency        = errors.New("dependency failure")
)

// Error is a classified booking failure. Message is safe to show to clients.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewError classifies cause under kind with a client-facing message.
func NewError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func newError(kind error, message string, cause error) *Error {
	return NewError(kind, message, cause)
}

func invalid(message string) error {
	return newError(ErrInvalidRequest, message, nil)
}

func notFound(message string) error {
	return newError(ErrNotFound, message, nil)
}

func forbidden(message string) error {
	return newError(ErrForbidden, message, nil)
}

func dependency(message string, cause error) error {
	return newError(ErrDependency, message, cause)
}

var statusByKind = []struct {
	kind   error
	status int
}{
	{ErrInvalidRequest, http.StatusBadRequest},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrPaymentIncomplete, http.StatusPaymentRequired},
	{ErrForbidden, http.StatusForbidden},
	{ErrNotFound, http.StatusNotFound},
	{ErrConflict, http.StatusConflict},
	{ErrExpired, http.StatusGone},
	{ErrDependency, http.StatusBadGateway},
}

// HTTPStatus maps err to a response status and client message. Unclassified
// errors become 500 with a generic message.
func HTTPStatus(err error) (int, string) {
	var be *Error
	if errors.As(err, &be) {
		for _, k := range statusByKind {
			if errors.Is(be.Kind, k.kind) {
				return k.status, be.Message
			}
		}
	}
	return http.StatusInternalServerError, "Server error"
}
