package boundary

import (
	"log/slog"

	"golang.org/x/time/rate"
)

// Option is an option configuring a boundary endpoint.
type Option func(cfg *endpointConfig)

type endpointConfig struct {
	log       *slog.Logger
	metrics   *Metrics
	limiter   *rate.Limiter
	cache     *ResponseCache
	requestID bool
}

// WithLogger configures the logger handler failures are reported to.
func WithLogger(log *slog.Logger) Option {
	return func(cfg *endpointConfig) {
		cfg.log = log
	}
}

// WithMetrics configures prometheus collectors the endpoint reports into.
func WithMetrics(m *Metrics) Option {
	return func(cfg *endpointConfig) {
		cfg.metrics = m
	}
}

// WithRateLimiter configures a limiter applied before the handler runs.
// Requests over the limit receive a 429 without reaching the handler.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(cfg *endpointConfig) {
		cfg.limiter = l
	}
}

// WithResponseCache configures an LRU memoizing successful GET and HEAD
// responses.
func WithResponseCache(c *ResponseCache) Option {
	return func(cfg *endpointConfig) {
		cfg.cache = c
	}
}

// WithRequestID configures whether the endpoint stamps an X-Request-Id
// header onto requests that arrive without one.
func WithRequestID(enabled bool) Option {
	return func(cfg *endpointConfig) {
		cfg.requestID = enabled
	}
}
