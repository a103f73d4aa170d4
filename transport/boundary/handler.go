package boundary

import (
	"io"
	"net/http"
)

// NewHTTPHandler adapts an [Endpoint] to net/http. The inbound request is
// converted into a boundary [Request] (body fully read, Host preserved as
// a header) before the endpoint runs.
func NewHTTPHandler(endpoint Endpoint) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, hr *http.Request) {
		body, err := io.ReadAll(hr.Body)
		if err != nil {
			http.Error(w, internalServerError, http.StatusInternalServerError)
			return
		}

		headers := hr.Header.Clone()
		if headers.Get("Host") == "" && hr.Host != "" {
			headers.Set("Host", hr.Host)
		}

		r := &Request{
			Method:  hr.Method,
			URL:     hr.URL.RequestURI(),
			Headers: headers,
			RawBody: body,
		}

		res := endpoint(hr.Context(), r)
		for name, value := range res.Headers {
			w.Header().Set(name, value)
		}
		w.WriteHeader(res.Status)
		if res.Body != nil {
			io.Copy(w, res.Body)
		}
	})
}
