package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/graphedit/pkg/observability"
)

// =============================================================================
// Prometheus Metrics
// =============================================================================

// metrics implements the observability hooks with Prometheus collectors on
// a private registry.
type metrics struct {
	registry *prometheus.Registry

	layoutTotal    prometheus.Counter
	layoutDuration prometheus.Histogram
	layoutEdges    *prometheus.GaugeVec

	storageTotal    *prometheus.CounterVec
	storageDuration *prometheus.HistogramVec
	storageBytes    *prometheus.CounterVec

	cacheRequests *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec

	renderTotal    *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
}

var (
	_ observability.LayoutHooks  = (*metrics)(nil)
	_ observability.StorageHooks = (*metrics)(nil)
	_ observability.CacheHooks   = (*metrics)(nil)
	_ observability.RenderHooks  = (*metrics)(nil)
)

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &metrics{
		registry: reg,

		layoutTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "graphedit_layout_total",
			Help: "Total edge layout recomputes",
		}),
		layoutDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphedit_layout_duration_seconds",
			Help:    "Edge layout duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs to ~160ms
		}),
		layoutEdges: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "graphedit_layout_edges",
			Help: "Edges placed by the last layout, by shape",
		}, []string{"shape"}),

		storageTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "graphedit_storage_operations_total",
			Help: "Document store operations by backend, operation and result",
		}, []string{"backend", "operation", "result"}),
		storageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "graphedit_storage_duration_seconds",
			Help:    "Document store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8), // 0.1ms to ~1.6s
		}, []string{"backend", "operation"}),
		storageBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "graphedit_storage_bytes_total",
			Help: "Document bytes read and written",
		}, []string{"backend", "operation"}),

		cacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "graphedit_cache_requests_total",
			Help: "Render cache lookups by key type and result",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "graphedit_cache_written_bytes_total",
			Help: "Bytes written to the render cache",
		}, []string{"key_type"}),

		renderTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "graphedit_render_total",
			Help: "Renders by format and result",
		}, []string{"format", "result"}),
		renderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "graphedit_render_duration_seconds",
			Help:    "Render duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8), // 0.5ms to ~8s
		}, []string{"format"}),
	}
}

// install registers m as the process-wide observability hooks.
func (m *metrics) install() {
	observability.SetLayoutHooks(m)
	observability.SetStorageHooks(m)
	observability.SetCacheHooks(m)
	observability.SetRenderHooks(m)
}

// handler serves the registry in the Prometheus exposition format.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *metrics) OnLayoutComplete(lines, loops int, d time.Duration) {
	m.layoutTotal.Inc()
	m.layoutDuration.Observe(d.Seconds())
	m.layoutEdges.WithLabelValues("line").Set(float64(lines))
	m.layoutEdges.WithLabelValues("loop").Set(float64(loops))
}

func (m *metrics) OnLoad(_ context.Context, backend, _ string, size int, d time.Duration, err error) {
	m.storageTotal.WithLabelValues(backend, "load", result(err)).Inc()
	m.storageDuration.WithLabelValues(backend, "load").Observe(d.Seconds())
	m.storageBytes.WithLabelValues(backend, "load").Add(float64(size))
}

func (m *metrics) OnSave(_ context.Context, backend, _ string, size int, d time.Duration, err error) {
	m.storageTotal.WithLabelValues(backend, "save", result(err)).Inc()
	m.storageDuration.WithLabelValues(backend, "save").Observe(d.Seconds())
	if err == nil {
		m.storageBytes.WithLabelValues(backend, "save").Add(float64(size))
	}
}

func (m *metrics) OnDelete(_ context.Context, backend, _ string, err error) {
	m.storageTotal.WithLabelValues(backend, "delete", result(err)).Inc()
}

func (m *metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (m *metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (m *metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *metrics) OnRenderComplete(_ context.Context, format string, _ int, d time.Duration, err error) {
	m.renderTotal.WithLabelValues(format, result(err)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
}
