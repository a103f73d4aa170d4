package boundary

import (
	"fmt"
	"net/url"
	"strings"
)

const defaultScheme = "http"

// ResolveURL computes the absolute URL of a boundary request. A URL that
// already carries a scheme is used verbatim. Otherwise the scheme is
// taken from the x-forwarded-proto header (falling back to http) and the
// authority from the host header, joined to the path with exactly one
// separating slash. Failures wrap as [AdapterError].
func ResolveURL(r *Request) (*url.URL, error) {
	u, err := parseURL(r)
	if err != nil {
		return nil, NewAdapterError(r, "URL processing failed", err)
	}
	return u, nil
}

func parseURL(r *Request) (*url.URL, error) {
	if hasScheme(r.URL) {
		return url.Parse(r.URL)
	}

	scheme := r.Headers.Get("X-Forwarded-Proto")
	if scheme == "" {
		scheme = defaultScheme
	}
	host := r.Headers.Get("Host")
	if host == "" {
		return nil, fmt.Errorf("no host header in request for %q", r.URL)
	}

	path := r.URL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return url.Parse(scheme + "://" + host + path)
}

// hasScheme reports whether raw begins with a URI scheme, i.e. is already
// absolute.
func hasScheme(raw string) bool {
	i := strings.Index(raw, "://")
	if i <= 0 {
		return false
	}
	for _, c := range raw[:i] {
		if !isSchemeChar(c) {
			return false
		}
	}
	return true
}

func isSchemeChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '+', c == '-', c == '.':
		return true
	}
	return false
}
