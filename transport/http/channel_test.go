package http_test

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bindery/go-bindery/testing/helpers"
	"github.com/bindery/go-bindery/transport"
	thttp "github.com/bindery/go-bindery/transport/http"
	"github.com/stretchr/testify/require"
)

func TestChannelRequest(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		data, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Content-Type", r.Header.Get("Content-Type"))
		w.Write(data)
	}))
	defer srv.Close()

	headers := nethttp.Header{}
	headers.Set("Content-Type", "application/json")
	req := thttp.NewRequest("POST", helpers.Must(url.Parse(srv.URL)), strings.NewReader("{}"), headers)

	channel := thttp.NewChannel()
	res, err := channel.Request(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, res.Status())
	require.Equal(t, "application/json", res.Headers().Get("X-Content-Type"))
	data, err := io.ReadAll(res.Body())
	require.NoError(t, err)
	require.Equal(t, "{}", string(data))
}

func TestChannelUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusBadGateway)
	}))
	defer srv.Close()

	req := thttp.NewRequest("GET", helpers.Must(url.Parse(srv.URL)), nil, nil)
	channel := thttp.NewChannel()
	_, err := channel.Request(context.Background(), req)
	require.Error(t, err)

	var herr transport.HTTPError
	require.ErrorAs(t, err, &herr)
	require.Equal(t, nethttp.StatusBadGateway, herr.Status())
}

type bodyRecorder struct {
	io.Reader
	closed bool
}

func (b *bodyRecorder) Close() error {
	b.closed = true
	return nil
}

type cannedTransport struct {
	res *nethttp.Response
}

func (ct cannedTransport) RoundTrip(*nethttp.Request) (*nethttp.Response, error) {
	return ct.res, nil
}

func TestChannelClosesBodyOnUnexpectedStatus(t *testing.T) {
	body := &bodyRecorder{Reader: strings.NewReader("bad gateway")}
	client := &nethttp.Client{Transport: cannedTransport{&nethttp.Response{
		StatusCode: nethttp.StatusBadGateway,
		Header:     nethttp.Header{},
		Body:       body,
	}}}

	req := thttp.NewRequest("GET", helpers.Must(url.Parse("http://example.com/")), nil, nil)
	_, err := thttp.NewChannel(thttp.WithClient(client)).Request(context.Background(), req)
	require.Error(t, err)
	require.True(t, body.closed)
}

func TestChannelResponseClose(t *testing.T) {
	body := &bodyRecorder{Reader: strings.NewReader("ok")}
	client := &nethttp.Client{Transport: cannedTransport{&nethttp.Response{
		StatusCode: nethttp.StatusOK,
		Header:     nethttp.Header{},
		Body:       body,
	}}}

	req := thttp.NewRequest("GET", helpers.Must(url.Parse("http://example.com/")), nil, nil)
	res, err := thttp.NewChannel(thttp.WithClient(client)).Request(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, res.(io.Closer).Close())
	require.True(t, body.closed)
}

func TestChannelConfiguredSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusAccepted)
	}))
	defer srv.Close()

	req := thttp.NewRequest("GET", helpers.Must(url.Parse(srv.URL)), nil, nil)
	channel := thttp.NewChannel(thttp.WithSuccessStatusCode(nethttp.StatusOK, nethttp.StatusAccepted))
	res, err := channel.Request(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusAccepted, res.Status())
}
