package boundary

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bindery/go-bindery/transport"
)

// Endpoint is a boundary native endpoint function produced by [Wrap]. It
// never panics and never propagates handler errors: internal failures
// surface as a plain 500 response.
type Endpoint func(ctx context.Context, r *Request) Response

const internalServerError = "Internal Server Error"

// Wrap turns a [transport.Handler] into a boundary native endpoint. On
// invocation it restores any percent-encoded @ in the inbound URL
// (scoped identifiers in path segments must match literal @), re-injects
// the decoded URL into the request, invokes the handler and converts the
// outcome. Any failure is logged and answered with a 500 carrying the
// literal body "Internal Server Error" rather than leaking internal
// detail to the boundary's own exception handling.
func Wrap(handler transport.Handler, options ...Option) Endpoint {
	cfg := endpointConfig{}
	for _, opt := range options {
		opt(&cfg)
	}
	log := cfg.log
	if log == nil {
		log = slog.Default()
	}

	return func(ctx context.Context, r *Request) Response {
		start := time.Now()
		if r.Headers == nil {
			r.Headers = http.Header{}
		}
		if cfg.requestID && r.Headers.Get("X-Request-Id") == "" {
			r.Headers.Set("X-Request-Id", uuid.NewString())
		}
		rid := r.Headers.Get("X-Request-Id")

		r.URL = strings.ReplaceAll(r.URL, "%40", "@")

		if cfg.limiter != nil && !cfg.limiter.Allow() {
			log.Warn("request rate limited", "method", r.Method, "url", r.URL, "request_id", rid)
			res := textResponse(http.StatusTooManyRequests, "Too Many Requests", rid)
			cfg.metrics.observe(r.Method, res.Status, time.Since(start))
			return res
		}

		cacheable := cfg.cache != nil && (r.Method == http.MethodGet || r.Method == http.MethodHead)
		if cacheable {
			if cached, ok := cfg.cache.get(cacheKey(r)); ok {
				res := Response{
					Status:  cached.status,
					Headers: cloneFlat(cached.headers),
					Body:    bytes.NewReader(cached.body),
				}
				// the stored headers carry the id of the request that
				// populated the cache, not this one
				if rid != "" {
					res.Headers["X-Request-Id"] = rid
				}
				cfg.metrics.observe(r.Method, res.Status, time.Since(start))
				return res
			}
		}

		sres, err := InvokeHandler(ctx, handler, r)
		if err != nil {
			log.Error("request failed", "method", r.Method, "url", r.URL, "request_id", rid, "error", err)
			cfg.metrics.handlerError()
			res := textResponse(http.StatusInternalServerError, internalServerError, rid)
			cfg.metrics.observe(r.Method, res.Status, time.Since(start))
			return res
		}

		res := ToBoundaryResponse(sres)
		if rid != "" {
			res.Headers["X-Request-Id"] = rid
		}

		if cacheable && res.Status == http.StatusOK {
			var data []byte
			if res.Body != nil {
				data, err = io.ReadAll(res.Body)
				if err != nil {
					log.Error("reading response body", "method", r.Method, "url", r.URL, "request_id", rid, "error", err)
					cfg.metrics.handlerError()
					fres := textResponse(http.StatusInternalServerError, internalServerError, rid)
					cfg.metrics.observe(r.Method, fres.Status, time.Since(start))
					return fres
				}
				res.Body = bytes.NewReader(data)
			}
			cfg.cache.put(cacheKey(r), cachedResponse{
				status:  res.Status,
				headers: cloneFlat(res.Headers),
				body:    data,
			})
		}

		cfg.metrics.observe(r.Method, res.Status, time.Since(start))
		return res
	}
}

func textResponse(status int, body string, requestID string) Response {
	headers := map[string]string{"Content-Type": "text/plain; charset=utf-8"}
	if requestID != "" {
		headers["X-Request-Id"] = requestID
	}
	return Response{Status: status, Headers: headers, Body: strings.NewReader(body)}
}

func cloneFlat(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[k] = v
	}
	return out
}
