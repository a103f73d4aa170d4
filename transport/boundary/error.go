package boundary

import (
	"fmt"

	"github.com/bindery/go-bindery/core/result/failure"
)

// AdapterError is a transport level failure. It carries the offending
// boundary request, a human description and an optional underlying
// cause. Adapter errors are surfaced to the handler's caller as a failed
// result, never as an unhandled exception past the endpoint wrapper.
type AdapterError struct {
	request *Request
	message string
	cause   error
	trace   failure.NamedWithStackTrace
}

func NewAdapterError(request *Request, message string, cause error) *AdapterError {
	return &AdapterError{
		request: request,
		message: message,
		cause:   cause,
		trace:   failure.NamedWithCurrentStackTrace("AdapterError"),
	}
}

func (e *AdapterError) Name() string {
	return "AdapterError"
}

func (e *AdapterError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return fmt.Sprintf("%s: %s", e.message, e.cause)
}

// Request is the boundary request that triggered the failure.
func (e *AdapterError) Request() *Request {
	return e.request
}

func (e *AdapterError) Cause() error {
	return e.cause
}

func (e *AdapterError) Unwrap() error {
	return e.cause
}

func (e *AdapterError) Stack() string {
	return e.trace.Stack()
}

var _ failure.Failure = (*AdapterError)(nil)
var _ failure.WithStackTrace = (*AdapterError)(nil)
