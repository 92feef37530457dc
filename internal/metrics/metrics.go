// Package metrics exposes Prometheus counters for check-ins, imports and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "event_checkin"

// Metrics holds the application's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	checkinUpdates *prometheus.CounterVec
	importRuns     *prometheus.CounterVec
	importRows     *prometheus.CounterVec
	importInserts  *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates a registry with Go runtime, process and application collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checkinUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkin_updates_total",
			Help:      "Students whose presence changed, by action and scope.",
		}, []string{"action", "scope"}),
		importRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_runs_total",
			Help:      "Roster import passes, by source.",
		}, []string{"source"}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Roster rows seen during import, by outcome.",
		}, []string{"outcome"}),
		importInserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_inserts_total",
			Help:      "Rows written during import, by entity.",
		}, []string{"entity"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.checkinUpdates,
		m.importRuns,
		m.importRows,
		m.importInserts,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// CheckinUpdated records n students changed by one check-in or check-out.
func (m *Metrics) CheckinUpdated(action, scope string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.checkinUpdates.WithLabelValues(action, scope).Add(float64(n))
}

// ImportCompleted records the outcome of one import pass.
func (m *Metrics) ImportCompleted(source string, rowsRead, rowsSkipped, teams, students int) {
	if m == nil {
		return
	}
	m.importRuns.WithLabelValues(source).Inc()
	m.importRows.WithLabelValues("parsed").Add(float64(rowsRead - rowsSkipped))
	m.importRows.WithLabelValues("skipped").Add(float64(rowsSkipped))
	m.importInserts.WithLabelValues("team").Add(float64(teams))
	m.importInserts.WithLabelValues("student").Add(float64(students))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
