// Package boundary converts between the request/response representation
// native to a surrounding framework at the network edge and the
// normalized standard representation handlers operate on.
package boundary

import (
	"io"
	"net/http"
)

// Request is the boundary's inbound request representation: method, the
// URL as the boundary reported it (possibly just a path), headers and an
// optional raw byte body. The value is deliberately mutable: the endpoint
// wrapper re-injects the decoded URL into the same request before the
// handler runs.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	RawBody []byte
}

// Response is the boundary's outbound response representation. Headers
// are flattened to single string values and a nil body means no body.
type Response struct {
	Status  int
	Headers map[string]string
	Body    io.Reader
}
