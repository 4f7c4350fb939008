package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements every hook category on Prometheus collectors.
type Prometheus struct {
	resolves        *prometheus.CounterVec
	resolveDuration *prometheus.HistogramVec
	resolveNodes    *prometheus.HistogramVec
	assessDuration  prometheus.Histogram

	cacheOps   *prometheus.CounterVec
	cacheBytes *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg. A nil
// reg leaves them unregistered, which is useful in tests.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gavtree", Name: "resolutions_total",
			Help: "Dependency tree resolutions by kind and outcome.",
		}, []string{"kind", "outcome"}),
		resolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gavtree", Name: "resolution_duration_seconds",
			Help:    "Time spent resolving dependency trees.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"kind"}),
		resolveNodes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gavtree", Name: "resolution_nodes",
			Help:    "Nodes per resolved tree.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"kind"}),
		assessDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gavtree", Name: "assessment_duration_seconds",
			Help:    "Time spent assessing artifact versions.",
			Buckets: prometheus.DefBuckets,
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gavtree", Name: "cache_operations_total",
			Help: "Cache operations by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gavtree", Name: "cache_written_bytes_total",
			Help: "Bytes written to the cache by key type.",
		}, []string{"key_type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gavtree", Name: "upstream_requests_total",
			Help: "Upstream HTTP requests by host and status code.",
		}, []string{"method", "host", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gavtree", Name: "upstream_request_duration_seconds",
			Help:    "Upstream HTTP latency by host.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "host"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gavtree", Name: "upstream_errors_total",
			Help: "Upstream HTTP transport failures by host.",
		}, []string{"method", "host"}),
	}
	if reg != nil {
		reg.MustRegister(
			p.resolves, p.resolveDuration, p.resolveNodes, p.assessDuration,
			p.cacheOps, p.cacheBytes,
			p.httpRequests, p.httpDuration, p.httpErrors,
		)
	}
	return p
}

// Hooks returns a hook set backed by p.
func (p *Prometheus) Hooks() Hooks {
	return Hooks{Resolve: p, Cache: p, HTTP: p}
}

func (p *Prometheus) OnResolveStart(context.Context, string, string) {}

func (p *Prometheus) OnResolveComplete(_ context.Context, kind, _ string, nodeCount int, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.resolves.WithLabelValues(kind, outcome).Inc()
	p.resolveDuration.WithLabelValues(kind).Observe(d.Seconds())
	if err == nil {
		p.resolveNodes.WithLabelValues(kind).Observe(float64(nodeCount))
	}
}

func (p *Prometheus) OnAssess(_ context.Context, _ string, _ int, d time.Duration) {
	p.assessDuration.Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnCacheError(_ context.Context, keyType string, _ error) {
	p.cacheOps.WithLabelValues(keyType, "error").Inc()
}

func (p *Prometheus) OnRequest(context.Context, string, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, method, host, _ string, code int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, host, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(method, host).Observe(d.Seconds())
}

func (p *Prometheus) OnError(_ context.Context, method, host, _ string, _ error) {
	p.httpErrors.WithLabelValues(method, host).Inc()
}

var (
	_ ResolveHooks = (*Prometheus)(nil)
	_ CacheHooks   = (*Prometheus)(nil)
	_ HTTPHooks    = (*Prometheus)(nil)
)
