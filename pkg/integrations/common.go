package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/gavtree/pkg/buildinfo"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when an artifact or resource doesn't exist upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewHTTPClientWithTimeout is [NewHTTPClient] with a custom timeout. A
// non-positive timeout selects the default.
func NewHTTPClientWithTimeout(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = httpTimeout
	}
	return &http.Client{Timeout: timeout}
}

// DefaultHeaders returns the headers every gavtree client sends.
func DefaultHeaders() map[string]string {
	return map[string]string{"User-Agent": buildinfo.UserAgent()}
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
