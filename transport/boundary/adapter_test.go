package boundary_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/bindery/go-bindery/transport"
	"github.com/bindery/go-bindery/transport/boundary"
	thttp "github.com/bindery/go-bindery/transport/http"
	"github.com/stretchr/testify/require"
)

func hostHeaders() http.Header {
	return http.Header{"Host": []string{"example.com"}}
}

func TestToStandardRequest(t *testing.T) {
	t.Run("GET never carries a body", func(t *testing.T) {
		r := &boundary.Request{
			Method:  http.MethodGet,
			URL:     "/things",
			Headers: hostHeaders(),
			RawBody: []byte("ignore me"),
		}
		req, err := boundary.ToStandardRequest(r)
		require.NoError(t, err)
		require.Nil(t, req.Body())
	})

	t.Run("HEAD never carries a body", func(t *testing.T) {
		r := &boundary.Request{
			Method:  http.MethodHead,
			URL:     "/things",
			Headers: hostHeaders(),
			RawBody: []byte("ignore me"),
		}
		req, err := boundary.ToStandardRequest(r)
		require.NoError(t, err)
		require.Nil(t, req.Body())
	})

	t.Run("POST body verbatim", func(t *testing.T) {
		r := &boundary.Request{
			Method:  http.MethodPost,
			URL:     "/things",
			Headers: hostHeaders(),
			RawBody: []byte(`{"a":1}`),
		}
		req, err := boundary.ToStandardRequest(r)
		require.NoError(t, err)
		require.NotNil(t, req.Body())
		data, err := io.ReadAll(req.Body())
		require.NoError(t, err)
		require.Equal(t, `{"a":1}`, string(data))
	})

	t.Run("POST without body gets an explicit empty buffer", func(t *testing.T) {
		r := &boundary.Request{
			Method:  http.MethodPost,
			URL:     "/things",
			Headers: hostHeaders(),
		}
		req, err := boundary.ToStandardRequest(r)
		require.NoError(t, err)
		require.NotNil(t, req.Body())
		data, err := io.ReadAll(req.Body())
		require.NoError(t, err)
		require.Empty(t, data)
	})

	t.Run("headers are case-insensitive multi-value", func(t *testing.T) {
		headers := hostHeaders()
		headers.Add("X-Thing", "one")
		headers.Add("X-Thing", "two")
		r := &boundary.Request{Method: http.MethodGet, URL: "/", Headers: headers}
		req, err := boundary.ToStandardRequest(r)
		require.NoError(t, err)
		require.Equal(t, []string{"one", "two"}, req.Headers().Values("x-thing"))
		require.Equal(t, "http://example.com/", req.URL().String())
	})
}

func TestInvokeHandler(t *testing.T) {
	t.Run("handler response passes through", func(t *testing.T) {
		handler := func(ctx context.Context, req transport.StandardRequest) (transport.StandardResponse, error) {
			return thttp.NewResponse(http.StatusOK, strings.NewReader("ok"), nil), nil
		}
		r := &boundary.Request{Method: http.MethodGet, URL: "/", Headers: hostHeaders()}
		res, err := boundary.InvokeHandler(context.Background(), handler, r)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.Status())
	})

	t.Run("handler error wraps as AdapterError with cause", func(t *testing.T) {
		boom := errors.New("boom")
		handler := func(ctx context.Context, req transport.StandardRequest) (transport.StandardResponse, error) {
			return nil, boom
		}
		r := &boundary.Request{Method: http.MethodGet, URL: "/", Headers: hostHeaders()}
		_, err := boundary.InvokeHandler(context.Background(), handler, r)
		require.Error(t, err)
		var ae *boundary.AdapterError
		require.ErrorAs(t, err, &ae)
		require.Regexp(t, "request processing failed", ae.Error())
		require.Equal(t, boom, ae.Cause())
		require.Equal(t, r, ae.Request())
	})

	t.Run("handler panic is captured", func(t *testing.T) {
		handler := func(ctx context.Context, req transport.StandardRequest) (transport.StandardResponse, error) {
			panic("kaboom")
		}
		r := &boundary.Request{Method: http.MethodGet, URL: "/", Headers: hostHeaders()}
		_, err := boundary.InvokeHandler(context.Background(), handler, r)
		require.Error(t, err)
		var ae *boundary.AdapterError
		require.ErrorAs(t, err, &ae)
		require.Regexp(t, "kaboom", ae.Error())
	})

	t.Run("bad URL surfaces before the handler runs", func(t *testing.T) {
		invoked := false
		handler := func(ctx context.Context, req transport.StandardRequest) (transport.StandardResponse, error) {
			invoked = true
			return thttp.NewResponse(http.StatusOK, nil, nil), nil
		}
		r := &boundary.Request{Method: http.MethodGet, URL: "/", Headers: http.Header{}}
		_, err := boundary.InvokeHandler(context.Background(), handler, r)
		require.Error(t, err)
		require.False(t, invoked)
	})
}

func TestToBoundaryResponse(t *testing.T) {
	headers := http.Header{}
	headers.Add("X-Multi", "a")
	headers.Add("X-Multi", "b")
	headers.Set("Content-Type", "text/plain")

	res := boundary.ToBoundaryResponse(thttp.NewResponse(http.StatusTeapot, strings.NewReader("tea"), headers))
	require.Equal(t, http.StatusTeapot, res.Status)
	require.Equal(t, "a, b", res.Headers["X-Multi"])
	require.Equal(t, "text/plain", res.Headers["Content-Type"])

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, "tea", string(data))

	t.Run("absent body stays absent", func(t *testing.T) {
		res := boundary.ToBoundaryResponse(thttp.NewResponse(http.StatusNoContent, nil, nil))
		require.Nil(t, res.Body)
	})
}
