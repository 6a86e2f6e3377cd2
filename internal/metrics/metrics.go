package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ainews"

// Metrics holds the pipeline counters and the health status of the last run.
// All methods are safe on a nil receiver so components can run without metrics.
type Metrics struct {
	registry *prometheus.Registry

	sourcesFetched   *prometheus.CounterVec
	articlesFetched  prometheus.Counter
	articlesDropped  prometheus.Counter
	contentFetched   *prometheus.CounterVec
	articlesAssigned *prometheus.CounterVec
	summaries        *prometheus.CounterVec
	runDuration      prometheus.Histogram

	mu            sync.RWMutex
	runs          int64
	lastRunTime   time.Time
	lastErrorTime time.Time
	lastError     string
	isHealthy     bool
}

// Global is the process-wide instance used by the command surface.
var Global = New()

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sourcesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sources_fetched_total",
			Help:      "Feed sources fetched, by result.",
		}, []string{"result"}),
		articlesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_fetched_total",
			Help:      "Articles emitted by the feed fetcher.",
		}),
		articlesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_outside_window_total",
			Help:      "Articles discarded by the recency window.",
		}),
		contentFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_fetches_total",
			Help:      "Full-page content fetches, by result.",
		}, []string{"result"}),
		articlesAssigned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_categorized_total",
			Help:      "Articles per assigned category; unassigned ones use the uncategorized label.",
		}, []string{"category"}),
		summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Summarization calls, by kind and result.",
		}, []string{"kind", "result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of complete pipeline runs.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		isHealthy: true,
	}

	m.registry.MustRegister(
		m.sourcesFetched,
		m.articlesFetched,
		m.articlesDropped,
		m.contentFetched,
		m.articlesAssigned,
		m.summaries,
		m.runDuration,
		collectors.NewGoCollector(),
	)
	return m
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

func (m *Metrics) SourceFetched(ok bool) {
	if m == nil {
		return
	}
	m.sourcesFetched.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) ArticlesFetched(n int) {
	if m == nil {
		return
	}
	m.articlesFetched.Add(float64(n))
}

func (m *Metrics) ArticlesOutsideWindow(n int) {
	if m == nil {
		return
	}
	m.articlesDropped.Add(float64(n))
}

func (m *Metrics) ContentFetched(ok bool) {
	if m == nil {
		return
	}
	m.contentFetched.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) Categorized(category string, n int) {
	if m == nil {
		return
	}
	m.articlesAssigned.WithLabelValues(category).Add(float64(n))
}

// Summary records one summarization call; result is ok, failed or empty.
func (m *Metrics) Summary(kind, result string) {
	if m == nil {
		return
	}
	m.summaries.WithLabelValues(kind, result).Inc()
}

// RecordRun records a finished run and updates the health status.
func (m *Metrics) RecordRun(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.runDuration.Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	m.lastRunTime = time.Now()
	if err != nil {
		m.lastError = err.Error()
		m.lastErrorTime = m.lastRunTime
		m.isHealthy = false
		return
	}
	m.isHealthy = true
}

// Health returns the status fields served by the health endpoint.
func (m *Metrics) Health() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{"is_healthy": true}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := map[string]interface{}{
		"runs":       m.runs,
		"last_error": m.lastError,
		"is_healthy": m.isHealthy,
	}
	if !m.lastRunTime.IsZero() {
		stats["last_run_time"] = m.lastRunTime.Format(time.RFC3339)
	}
	if !m.lastErrorTime.IsZero() {
		stats["last_error_time"] = m.lastErrorTime.Format(time.RFC3339)
	}
	return stats
}

// Handler serves the Prometheus exposition of this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
