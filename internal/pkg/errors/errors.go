package errors

import (
	stderrors "errors"
	"net/http"
)

// HTTPError carries the status a handler should answer with.
type HTTPError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Err }

func BadRequest(msg string) *HTTPError { return &HTTPError{StatusCode: http.StatusBadRequest, Message: msg} }

func TooLarge(msg string) *HTTPError {
	return &HTTPError{StatusCode: http.StatusRequestEntityTooLarge, Message: msg}
}

// Wrap attaches a status to err, keeping err's message.
func Wrap(status int, err error) *HTTPError {
	return &HTTPError{StatusCode: status, Message: err.Error(), Err: err}
}

// StatusOf returns the status carried by err, or 500 when err carries none.
func StatusOf(err error) int {
	var he *HTTPError
	if stderrors.As(err, &he) {
		return he.StatusCode
	}
	return http.StatusInternalServerError
}
