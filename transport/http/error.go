package http

import (
	nethttp "net/http"

	"github.com/bindery/go-bindery/transport"
)

// httpError captures the status and headers of a response the channel
// refused to treat as success.
type httpError struct {
	message string
	status  int
	headers nethttp.Header
}

var _ transport.HTTPError = (*httpError)(nil)

func (err *httpError) Error() string {
	return err.message
}

func (err *httpError) Name() string {
	return "HTTPError"
}

// Status is the HTTP status code of the failed response.
func (err *httpError) Status() int {
	return err.status
}

// Headers are the response headers of the failed response.
func (err *httpError) Headers() nethttp.Header {
	return err.headers
}

// NewHTTPError creates a [transport.HTTPError] describing a response
// whose status code fell outside the channel's configured success set.
func NewHTTPError(message string, status int, headers nethttp.Header) transport.HTTPError {
	return &httpError{
		message: message,
		status:  status,
		headers: headers,
	}
}
