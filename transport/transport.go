package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/bindery/go-bindery/core/result/failure"
)

// StandardRequest is the normalized, framework agnostic request
// representation: absolute URL, case insensitive multi-value headers and
// a body stream. GET and HEAD requests never carry a body.
type StandardRequest interface {
	Method() string
	URL() *url.URL
	Headers() http.Header
	Body() io.Reader
}

// StandardResponse is the normalized response representation. A nil body
// means the response has no body at all.
type StandardResponse interface {
	Status() int
	Headers() http.Header
	Body() io.Reader
}

// Handler is any function that accepts a StandardRequest and produces a
// StandardResponse.
type Handler func(ctx context.Context, req StandardRequest) (StandardResponse, error)

// Channel delivers a StandardRequest to a remote party and yields its
// StandardResponse.
type Channel interface {
	Request(ctx context.Context, request StandardRequest) (StandardResponse, error)
}

type HTTPError interface {
	failure.Failure
	Status() int
	Headers() http.Header
}
