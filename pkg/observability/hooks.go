// Package observability provides hooks for metrics and tracing.
//
// Instrumentation is optional. Components that emit events take a [Hooks]
// value explicitly; there is no process-wide registry. The zero value and
// [Noop] discard every event, so libraries never need a nil check:
//
//	hooks := observability.NewPrometheus(prometheus.DefaultRegisterer).Hooks()
//	runner := pipeline.NewRunner(c, keyer, logger, pipeline.WithHooks(hooks))
//
// # Events
//
//   - [ResolveHooks]: dependency tree resolution and version assessment
//   - [CacheHooks]: hits, misses and writes per key type
//   - [HTTPHooks]: outgoing registry and feed requests
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Resolve Hooks
// =============================================================================

// ResolveHooks receives events from the resolution pipeline.
type ResolveHooks interface {
	// OnResolveStart records the start of a tree resolution. kind is
	// "coordinate", "manifest" or "modules".
	OnResolveStart(ctx context.Context, kind, subject string)
	OnResolveComplete(ctx context.Context, kind, subject string, nodeCount int, duration time.Duration, err error)

	// OnAssess records a finished vulnerability/stability assessment.
	OnAssess(ctx context.Context, subject string, versions int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)

	// OnCacheError records a backend failure that was treated as a miss.
	OnCacheError(ctx context.Context, keyType string, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// Hook set
// =============================================================================

// Hooks bundles the hook categories passed to a component. Nil fields are
// treated as no-ops.
type Hooks struct {
	Resolve ResolveHooks
	Cache   CacheHooks
	HTTP    HTTPHooks
}

// Noop returns a hook set that discards every event.
func Noop() Hooks {
	return Hooks{
		Resolve: NoopResolveHooks{},
		Cache:   NoopCacheHooks{},
		HTTP:    NoopHTTPHooks{},
	}
}

// WithDefaults fills nil fields with no-op implementations.
func (h Hooks) WithDefaults() Hooks {
	if h.Resolve == nil {
		h.Resolve = NoopResolveHooks{}
	}
	if h.Cache == nil {
		h.Cache = NoopCacheHooks{}
	}
	if h.HTTP == nil {
		h.HTTP = NoopHTTPHooks{}
	}
	return h
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopResolveHooks is a no-op implementation of ResolveHooks.
type NoopResolveHooks struct{}

func (NoopResolveHooks) OnResolveStart(context.Context, string, string) {}
func (NoopResolveHooks) OnResolveComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopResolveHooks) OnAssess(context.Context, string, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)          {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)         {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)     {}
func (NoopCacheHooks) OnCacheError(context.Context, string, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}
