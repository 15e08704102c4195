// Package apperr holds the typed failures raised by accessors and guards.
// Each error carries the HTTP status the central error handler responds with.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// StatusOf returns the status of the first *Error in err's chain,
// or 500 when there is none.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return err != nil && StatusOf(err) == http.StatusNotFound
}

func IsBadRequest(err error) bool {
	return err != nil && StatusOf(err) == http.StatusBadRequest
}

func IsUnauthorized(err error) bool {
	return err != nil && StatusOf(err) == http.StatusUnauthorized
}
