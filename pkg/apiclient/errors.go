package apiclient

import (
	"errors"
	"fmt"
)

// ErrUnreachable marks requests that never got an HTTP response.
var ErrUnreachable = errors.New("Failed to connect to server")

// ErrNoSession is returned by authenticated calls made without a token.
var ErrNoSession = errors.New("not logged in")

// APIError is a non-2xx reply. Message is the backend's "message" field.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// transportError prints as ErrUnreachable but keeps the dial error for logs.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return ErrUnreachable.Error() }

func (e *transportError) Unwrap() []error { return []error{ErrUnreachable, e.err} }

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
