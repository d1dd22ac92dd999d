package client

import (
	"fmt"
)

// ErrorClass represents a classification of fetch errors, used for
// metrics labels and failure logging.
type ErrorClass string

const (
	// ErrorClassConfig represents first-page URL resolution failures.
	ErrorClassConfig ErrorClass = "config"

	// ErrorClassHTTP represents non-200 response statuses.
	ErrorClassHTTP ErrorClass = "http"

	// ErrorClassDecode represents malformed JSON response bodies.
	ErrorClassDecode ErrorClass = "decode"

	// ErrorClassNetwork represents transport-level failures.
	ErrorClassNetwork ErrorClass = "network"
)

// StatusError is returned when a page request completes with any status
// other than 200. The check is strict equality: 201 and 204 fail too.
type StatusError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.StatusCode, e.URL)
}

// DecodeError is returned when a 200 response body is not valid JSON.
type DecodeError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
