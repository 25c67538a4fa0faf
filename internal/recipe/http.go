package recipe

import (
	"net/http"
)

// NewHTTPClient creates the HTTP client for upstream recipe calls.
// It uses the default transport settings and follows redirects. There is
// no client-level timeout; the caller's context bounds each request.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
	}
}
