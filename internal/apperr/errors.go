// Package apperr defines the tagged error taxonomy returned across the
// authentication core boundary. Every error carries a client-safe
// message and the HTTP status it maps to; internal detail stays on the
// wrapped cause and is only ever logged.
package apperr

import "net/http"

// Kind classifies an error for clients.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

// InvalidCredentials is the single message used for every credential
// failure. Unknown identifier and wrong password must be
// indistinguishable to the caller.
const InvalidCredentials = "Invalid credentials."

// Error is a tagged outcome: kind, stable client message and HTTP
// status. The wrapped cause, if any, is server-side only.
type Error struct {
	Kind       Kind
	HTTPStatus int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the internal cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewValidation reports a client-fixable input problem.
func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, HTTPStatus: http.StatusBadRequest, Message: message}
}

// NewConflict reports a uniqueness violation.
func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, HTTPStatus: http.StatusConflict, Message: message}
}

// NewUnauthorized reports bad credentials with the generic message.
func NewUnauthorized() *Error {
	return &Error{Kind: KindUnauthorized, HTTPStatus: http.StatusUnauthorized, Message: InvalidCredentials}
}

// NewInternal wraps a server-side failure behind a generic message.
func NewInternal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, HTTPStatus: http.StatusInternalServerError, Message: message, cause: cause}
}
