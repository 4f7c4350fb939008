package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/gavtree/pkg/cache"
	"github.com/matzehuels/gavtree/pkg/httputil"
	"github.com/matzehuels/gavtree/pkg/observability"
)

func TestNewClient(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(c, "test:", time.Hour, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test:", time.Hour, nil)
	if _, ok := client.cache.(cache.NullCache); !ok {
		t.Errorf("nil cache should become NullCache, got %T", client.cache)
	}
	if client.headers != nil {
		t.Error("NewClient() should allow nil headers")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(cache.NewMemoryCache(0), "test:", time.Hour, nil)
	client.SetHTTPClient(server.Client())

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var gotDefault, gotOverride string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDefault = r.Header.Get("X-Default")
		gotOverride = r.Header.Get("X-Override")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, map[string]string{
		"X-Default":  "default",
		"X-Override": "default",
	})
	client.SetHTTPClient(server.Client())

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if gotDefault != "default" {
		t.Errorf("default header = %q", gotDefault)
	}
	if gotOverride != "overridden" {
		t.Errorf("header = %q, want %q", gotOverride, "overridden")
	}
}

func TestClientGetText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<project/>"))
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)
	client.SetHTTPClient(server.Client())

	text, err := client.GetText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetText() error: %v", err)
	}
	if text != "<project/>" {
		t.Errorf("GetText() = %q", text)
	}
}

func TestClientPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var in map[string]string
		json.Unmarshal(body, &in)
		json.NewEncoder(w).Encode(map[string]string{"echo": in["q"]})
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)
	client.SetHTTPClient(server.Client())

	var out map[string]string
	if err := client.PostJSON(context.Background(), server.URL, map[string]string{"q": "guava"}, &out); err != nil {
		t.Fatalf("PostJSON() error: %v", err)
	}
	if out["echo"] != "guava" {
		t.Errorf("PostJSON() echo = %q", out["echo"])
	}
}

func TestClientGet404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)
	client.SetHTTPClient(server.Client())

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClientGet500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)
	client.SetHTTPClient(server.Client())

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !httputil.IsRetryable(err) {
		t.Errorf("Get() error should be RetryableError, got %T", err)
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error should wrap ErrNetwork: %v", err)
	}
}

func TestClientCached(t *testing.T) {
	ctx := context.Background()
	hooks := &countingCacheHooks{}
	client := NewClient(cache.NewMemoryCache(0), "test:", time.Hour, nil)
	client.SetHooks(observability.Hooks{Cache: hooks})

	type testData struct {
		Value string `json:"value"`
	}
	fetchCount := 0
	fetch := func(v *testData) func() error {
		return func() error {
			fetchCount++
			*v = testData{Value: "fetched"}
			return nil
		}
	}

	var first testData
	if err := client.Cached(ctx, "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	var second testData
	if err := client.Cached(ctx, "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q", second.Value)
	}
	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("hooks hits=%d misses=%d sets=%d, want 1/1/1", hooks.hits, hooks.misses, hooks.sets)
	}
}

func TestClientCachedRefresh(t *testing.T) {
	ctx := context.Background()
	client := NewClient(cache.NewMemoryCache(0), "test:", time.Hour, nil)

	fetchCount := 0
	var value string
	fetch := func() error {
		fetchCount++
		value = "fetched"
		return nil
	}

	client.Cached(ctx, "key", false, &value, fetch)
	if err := client.Cached(ctx, "key", true, &value, fetch); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetchCount != 2 {
		t.Errorf("fetch count = %d, want 2", fetchCount)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := NewClient(cache.NewMemoryCache(0), "test:", time.Hour, nil)

	var value string
	fetchCount := 0
	fetch := func() error {
		fetchCount++
		return ErrNotFound // non-retryable
	}

	err := client.Cached(context.Background(), "key", false, &value, fetch)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}
}

func TestClientCachedBrokenCache(t *testing.T) {
	client := NewClient(brokenCache{}, "test:", time.Hour, nil)

	var value string
	err := client.Cached(context.Background(), "key", false, &value, func() error {
		value = "live"
		return nil
	})
	if err != nil {
		t.Fatalf("cache failures must not fail the call: %v", err)
	}
	if value != "live" {
		t.Errorf("value = %q, want live", value)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantErr    bool
		wantType   error
		isRetryErr bool
	}{
		{name: "200 OK", code: 200},
		{name: "404 Not Found", code: 404, wantErr: true, wantType: ErrNotFound},
		{name: "429 Too Many Requests", code: 429, wantErr: true, isRetryErr: true},
		{name: "500 Internal Server Error", code: 500, wantErr: true, isRetryErr: true},
		{name: "502 Bad Gateway", code: 502, wantErr: true, isRetryErr: true},
		{name: "503 Service Unavailable", code: 503, wantErr: true, isRetryErr: true},
		{name: "400 Bad Request", code: 400, wantErr: true, wantType: ErrNetwork},
		{name: "403 Forbidden", code: 403, wantErr: true, wantType: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)

			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("checkStatus() should return error")
			}
			if tt.wantType != nil && !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			if httputil.IsRetryable(err) != tt.isRetryErr {
				t.Errorf("checkStatus() retryable = %v, want %v", httputil.IsRetryable(err), tt.isRetryErr)
			}
		})
	}
}

func TestURLEncode(t *testing.T) {
	if got := URLEncode(`g:"org.slf4j" AND a:"slf4j-api"`); got != "g%3A%22org.slf4j%22+AND+a%3A%22slf4j-api%22" {
		t.Errorf("URLEncode() = %q", got)
	}
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("backend down")
}
func (brokenCache) Delete(context.Context, string) error { return nil }
func (brokenCache) Close() error                         { return nil }

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }
