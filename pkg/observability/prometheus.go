package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements every hook interface with client_golang
// collectors.
type PrometheusHooks struct {
	signatures    *prometheus.CounterVec
	signatureTime *prometheus.HistogramVec
	searchSteps   *prometheus.HistogramVec
	inFlight      prometheus.Gauge
	cacheOps      *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	httpErrors    *prometheus.CounterVec
}

// NewPrometheusHooks creates the collectors and registers them on reg.
// It panics if they are already registered, like promauto.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		signatures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphsig",
			Name:      "signatures_total",
			Help:      "Signature computations by operation and outcome.",
		}, []string{"op", "outcome"}),
		signatureTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "graphsig",
			Name:      "signature_duration_seconds",
			Help:      "Time spent computing signatures.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"op"}),
		searchSteps: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "graphsig",
			Name:      "search_steps",
			Help:      "Canonization search nodes visited.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"op"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "graphsig",
			Name:      "signatures_in_flight",
			Help:      "Signature computations currently running.",
		}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphsig",
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "graphsig",
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphsig",
			Name:      "http_requests_total",
			Help:      "HTTP responses by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "graphsig",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP handler latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphsig",
			Name:      "http_errors_total",
			Help:      "HTTP handler errors by route.",
		}, []string{"method", "route"}),
	}
}

// Install registers h as the global signature, cache and HTTP hooks.
func (h *PrometheusHooks) Install() {
	SetSignatureHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

// OnSignatureStart implements SignatureHooks.
func (h *PrometheusHooks) OnSignatureStart(context.Context, string, int) {
	h.inFlight.Inc()
}

// OnSignatureComplete implements SignatureHooks.
func (h *PrometheusHooks) OnSignatureComplete(_ context.Context, ev SignatureEvent) {
	h.inFlight.Dec()
	outcome := "ok"
	if ev.Err != nil {
		outcome = "error"
	}
	h.signatures.WithLabelValues(ev.Op, outcome).Inc()
	h.signatureTime.WithLabelValues(ev.Op).Observe(ev.Duration.Seconds())
	if ev.SearchSteps > 0 {
		h.searchSteps.WithLabelValues(ev.Op).Observe(float64(ev.SearchSteps))
	}
}

// OnCacheHit implements CacheHooks.
func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements CacheHooks.
func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements CacheHooks.
func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

// OnRequest implements HTTPHooks.
func (h *PrometheusHooks) OnRequest(context.Context, string, string) {}

// OnResponse implements HTTPHooks.
func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// OnError implements HTTPHooks.
func (h *PrometheusHooks) OnError(_ context.Context, method, route string, _ error) {
	h.httpErrors.WithLabelValues(method, route).Inc()
}

// WriteTextfile writes all metrics gathered by g to path in the text
// exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

var (
	_ SignatureHooks = (*PrometheusHooks)(nil)
	_ CacheHooks     = (*PrometheusHooks)(nil)
	_ HTTPHooks      = (*PrometheusHooks)(nil)
)
