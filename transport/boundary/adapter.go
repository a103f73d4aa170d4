package boundary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bindery/go-bindery/transport"
	thttp "github.com/bindery/go-bindery/transport/http"
)

// ToStandardRequest normalizes a boundary request into a
// [transport.StandardRequest] with a resolved absolute URL. GET and HEAD
// requests never carry a body. For any other method the raw body is used
// verbatim when non-empty, otherwise an explicit empty buffer, so a
// missing body is distinguishable from a zero length one only by method
// semantics and never by nil checks.
func ToStandardRequest(r *Request) (transport.StandardRequest, error) {
	u, err := ResolveURL(r)
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	for name, values := range r.Headers {
		for _, v := range values {
			headers.Add(name, v)
		}
	}

	var body io.Reader
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		body = bytes.NewReader(r.RawBody)
	}
	return thttp.NewRequest(r.Method, u, body, headers), nil
}

// InvokeHandler normalizes the boundary request, invokes the handler and
// returns its standard response. Any error or panic raised by the
// handler is captured and wrapped into an [AdapterError], the handler is
// never allowed to crash the adapter.
func InvokeHandler(ctx context.Context, handler transport.Handler, r *Request) (res transport.StandardResponse, err error) {
	req, err := ToStandardRequest(r)
	if err != nil {
		return nil, err
	}

	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = NewAdapterError(r, "request processing failed", fmt.Errorf("panic: %v", p))
		}
	}()

	res, herr := handler(ctx, req)
	if herr != nil {
		return nil, NewAdapterError(r, "request processing failed", herr)
	}
	return res, nil
}

// ToBoundaryResponse converts a standard response back into the
// boundary's outbound representation. Multi-valued headers are folded to
// a single value per standard header-folding rules.
func ToBoundaryResponse(res transport.StandardResponse) Response {
	headers := make(map[string]string, len(res.Headers()))
	for name, values := range res.Headers() {
		headers[name] = strings.Join(values, ", ")
	}
	return Response{
		Status:  res.Status(),
		Headers: headers,
		Body:    res.Body(),
	}
}
