package http

import (
	"io"
	"net/http"
	"net/url"

	"github.com/bindery/go-bindery/transport"
)

type Request struct {
	method string
	url    *url.URL
	hdrs   http.Header
	body   io.Reader
}

func (req *Request) Method() string {
	return req.method
}

func (req *Request) URL() *url.URL {
	return req.url
}

func (req *Request) Headers() http.Header {
	return req.hdrs
}

func (req *Request) Body() io.Reader {
	return req.body
}

var _ transport.StandardRequest = (*Request)(nil)

type Response struct {
	status int
	hdrs   http.Header
	body   io.Reader
}

func (res *Response) Status() int {
	return res.status
}

func (res *Response) Headers() http.Header {
	return res.hdrs
}

func (res *Response) Body() io.Reader {
	return res.body
}

// Close releases the resources held by the response body, if any.
// Responses produced by a channel hold the HTTP connection open until
// closed.
func (res *Response) Close() error {
	if c, ok := res.body.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var _ transport.StandardResponse = (*Response)(nil)
var _ io.Closer = (*Response)(nil)

// NewRequest creates a [transport.StandardRequest]. A nil headers value
// is replaced with an empty header map.
func NewRequest(method string, u *url.URL, body io.Reader, headers http.Header) *Request {
	if headers == nil {
		headers = http.Header{}
	}
	return &Request{method, u, headers, body}
}

// NewResponse creates a [transport.StandardResponse]. A nil body means no
// body, as distinct from an empty one.
func NewResponse(status int, body io.Reader, headers http.Header) *Response {
	if headers == nil {
		headers = http.Header{}
	}
	return &Response{status, headers, body}
}
