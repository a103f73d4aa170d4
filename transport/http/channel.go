package http

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/bindery/go-bindery/transport"
)

// Option is an option configuring a HTTP channel.
type Option func(cfg *chanConfig)

type chanConfig struct {
	client   *http.Client
	statuses []int
}

// WithClient configures the HTTP client the channel should use to make
// requests.
func WithClient(c *http.Client) Option {
	return func(cfg *chanConfig) {
		cfg.client = c
	}
}

// WithSuccessStatusCode configures the HTTP status code(s) that will indicate a
// successful request.
func WithSuccessStatusCode(codes ...int) Option {
	return func(cfg *chanConfig) {
		cfg.statuses = codes
	}
}

type channel struct {
	client   *http.Client
	statuses []int
}

func (c *channel) Request(ctx context.Context, req transport.StandardRequest) (transport.StandardResponse, error) {
	hr, err := http.NewRequestWithContext(ctx, req.Method(), req.URL().String(), req.Body())
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	hr.Header = req.Headers()
	res, err := c.client.Do(hr)
	if err != nil {
		return nil, fmt.Errorf("doing HTTP request: %w", err)
	}
	if !slices.Contains(c.statuses, res.StatusCode) {
		res.Body.Close()
		return nil, NewHTTPError(fmt.Sprintf("HTTP Request failed. %s %s → %d", hr.Method, req.URL().String(), res.StatusCode), res.StatusCode, res.Header)
	}

	return NewResponse(res.StatusCode, res.Body, res.Header), nil
}

// NewChannel creates an outbound [transport.Channel] that delivers
// standard requests over HTTP.
//
// The body of a successful response reads from the underlying network
// connection. Callers must drain it and call [Response.Close] when done
// so the connection can be reused. Responses with an unexpected status
// are closed by the channel itself before it returns the
// [transport.HTTPError].
func NewChannel(options ...Option) transport.Channel {
	cfg := chanConfig{}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.client == nil {
		cfg.client = &http.Client{}
	}
	if len(cfg.statuses) == 0 {
		cfg.statuses = append(cfg.statuses, http.StatusOK)
	}
	return &channel{
		client:   cfg.client,
		statuses: cfg.statuses,
	}
}
