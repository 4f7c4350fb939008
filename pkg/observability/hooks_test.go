package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()
	h := Noop()

	h.Resolve.OnResolveStart(ctx, "coordinate", "g:a:1")
	h.Resolve.OnResolveComplete(ctx, "coordinate", "g:a:1", 10, time.Second, nil)
	h.Resolve.OnAssess(ctx, "g:a", 10, time.Second)

	h.Cache.OnCacheHit(ctx, "tree")
	h.Cache.OnCacheMiss(ctx, "versions")
	h.Cache.OnCacheSet(ctx, "vulns", 1024)
	h.Cache.OnCacheError(ctx, "search", errors.New("down"))

	h.HTTP.OnRequest(ctx, "GET", "repo.maven.apache.org", "/maven2/")
	h.HTTP.OnResponse(ctx, "GET", "repo.maven.apache.org", "/maven2/", 200, time.Second)
	h.HTTP.OnError(ctx, "GET", "repo.maven.apache.org", "/maven2/", nil)
}

func TestHooksWithDefaults(t *testing.T) {
	custom := &testCacheHooks{}
	h := Hooks{Cache: custom}.WithDefaults()

	if _, ok := h.Resolve.(NoopResolveHooks); !ok {
		t.Error("nil Resolve should default to NoopResolveHooks")
	}
	if _, ok := h.HTTP.(NoopHTTPHooks); !ok {
		t.Error("nil HTTP should default to NoopHTTPHooks")
	}
	if h.Cache != custom {
		t.Error("WithDefaults should keep non-nil hooks")
	}

	var zero Hooks
	zero = zero.WithDefaults()
	zero.Cache.OnCacheHit(context.Background(), "tree")
}

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)
	h := p.Hooks()

	h.Cache.OnCacheHit(ctx, "tree")
	h.Cache.OnCacheHit(ctx, "tree")
	h.Cache.OnCacheMiss(ctx, "tree")
	h.Cache.OnCacheSet(ctx, "tree", 100)
	h.Resolve.OnResolveComplete(ctx, "coordinate", "g:a:1", 5, time.Second, nil)
	h.Resolve.OnResolveComplete(ctx, "coordinate", "g:a:1", 0, time.Second, errors.New("bad"))
	h.HTTP.OnResponse(ctx, "GET", "repo.example", "/x", 200, time.Millisecond)
	h.HTTP.OnError(ctx, "GET", "repo.example", "/x", errors.New("timeout"))

	if got := testutil.ToFloat64(p.cacheOps.WithLabelValues("tree", "hit")); got != 2 {
		t.Errorf("cache hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.cacheBytes.WithLabelValues("tree")); got != 100 {
		t.Errorf("cache bytes = %v, want 100", got)
	}
	if got := testutil.ToFloat64(p.resolves.WithLabelValues("coordinate", "error")); got != 1 {
		t.Errorf("failed resolutions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.httpRequests.WithLabelValues("GET", "repo.example", "200")); got != 1 {
		t.Errorf("upstream requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.httpErrors.WithLabelValues("GET", "repo.example")); got != 1 {
		t.Errorf("upstream errors = %v, want 1", got)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("registry should expose gavtree metrics")
	}
}

type testCacheHooks struct{ hits int }

func (h *testCacheHooks) OnCacheHit(context.Context, string)          { h.hits++ }
func (h *testCacheHooks) OnCacheMiss(context.Context, string)         {}
func (h *testCacheHooks) OnCacheSet(context.Context, string, int)     {}
func (h *testCacheHooks) OnCacheError(context.Context, string, error) {}
