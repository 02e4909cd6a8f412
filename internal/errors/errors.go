// Package errors defines the error taxonomy shared by the API client
// and the conversation engine.
package errors

import "fmt"

// InvalidArgumentError reports malformed caller input detected before
// any I/O happens. It is fatal to the single call and never retried.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// NewInvalidArgument creates an InvalidArgumentError.
func NewInvalidArgument(format string, v ...interface{}) *InvalidArgumentError {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, v...)}
}

// APIError reports a non-success HTTP status from The Movie DB. Body
// carries the decoded JSON payload, or the raw response text when the
// body is not valid JSON.
type APIError struct {
	StatusCode int
	Body       interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d (%v)", e.StatusCode, e.Body)
}
