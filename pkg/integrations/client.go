package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gavtree/pkg/cache"
	"github.com/matzehuels/gavtree/pkg/httputil"
	"github.com/matzehuels/gavtree/pkg/observability"
)

// maxBodySize bounds every upstream response body.
const maxBodySize = 8 << 20

// Client provides shared HTTP functionality for registry and feed clients.
// It handles caching, retry logic, and common request headers.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
	headers   map[string]string
	hooks     observability.Hooks
	logger    *log.Logger
}

// NewClient creates a Client that caches responses in c under namespace
// for ttl. Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed, and nil for c to
// disable caching.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(),
		cache:     c,
		keyer:     cache.NewDefaultKeyer(),
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
		hooks:     observability.Noop(),
		logger:    log.New(io.Discard),
	}
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(h *http.Client) {
	if h != nil {
		c.http = h
	}
}

// SetKeyer replaces the cache keyer.
func (c *Client) SetKeyer(k cache.Keyer) {
	if k != nil {
		c.keyer = k
	}
}

// SetHooks installs observability hooks.
func (c *Client) SetHooks(h observability.Hooks) { c.hooks = h.WithDefaults() }

// SetLogger installs a logger for cache and transport warnings.
func (c *Client) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger { return c.logger }

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
// Cache failures are logged and never returned.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	return c.CachedFor(ctx, key, c.ttl, refresh, v, fetch)
}

// CachedFor is [Client.Cached] with an explicit TTL.
func (c *Client) CachedFor(ctx context.Context, key string, ttl time.Duration, refresh bool, v any, fetch func() error) error {
	full := c.keyer.HTTPKey(c.namespace, key)
	keyType := strings.TrimSuffix(c.namespace, ":")

	if !refresh {
		ok, err := cache.GetJSON(ctx, c.cache, full, v)
		switch {
		case err != nil:
			c.hooks.Cache.OnCacheError(ctx, keyType, err)
			c.logger.Warn("cache read failed", "key", full, "err", err)
		case ok:
			c.hooks.Cache.OnCacheHit(ctx, keyType)
			return nil
		default:
			c.hooks.Cache.OnCacheMiss(ctx, keyType)
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if err := c.cache.Set(ctx, full, data, ttl); err != nil {
		c.hooks.Cache.OnCacheError(ctx, keyType, err)
		c.logger.Warn("cache write failed", "key", full, "err", err)
		return nil
	}
	c.hooks.Cache.OnCacheSet(ctx, keyType, len(data))
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// It uses the client's default headers and handles retries automatically.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, http.MethodGet, url, nil, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(io.LimitReader(body, maxBodySize)).Decode(v)
}

// GetText performs an HTTP GET request and returns the response body as a string.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	data, err := c.GetBytes(ctx, url)
	return string(data), err
}

// GetBytes performs an HTTP GET request and returns the raw response body.
// Useful for XML endpoints such as POMs and maven-metadata.xml.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	body, err := c.doRequest(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(io.LimitReader(body, maxBodySize))
}

// PostJSON sends in as a JSON body and decodes the JSON response into out.
func (c *Client) PostJSON(ctx context.Context, url string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	body, err := c.doRequest(ctx, http.MethodPost, url, payload,
		map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(io.LimitReader(body, maxBodySize)).Decode(out)
}

func (c *Client) doRequest(ctx context.Context, method, rawURL string, payload []byte, headers map[string]string) (io.ReadCloser, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := hostPath(rawURL)
	c.hooks.HTTP.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.hooks.HTTP.OnError(ctx, method, host, path, err)
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	c.hooks.HTTP.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case httputil.RetryableStatus(code):
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func hostPath(raw string) (string, string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", ""
	}
	return u.Host, u.Path
}
