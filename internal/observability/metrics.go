// Package observability exposes Prometheus counters for record conversion,
// storage, publishing and HTTP traffic.
package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/models"
)

// Direction labels for conversion counters.
const (
	Harmonize = "harmonize"
	Dehydrate = "dehydrate"
)

// Metrics holds the service collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	stored      *prometheus.CounterVec
	duplicates  *prometheus.CounterVec
	published   *prometheus.CounterVec
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hkreporter",
			Subsystem: "convert",
			Name:      "conversions_total",
			Help:      "Record conversions by kind, direction and result.",
		}, []string{"kind", "direction", "result"}),
		stored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hkreporter",
			Subsystem: "storage",
			Name:      "records_inserted_total",
			Help:      "Records written to the records table.",
		}, []string{"kind"}),
		duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hkreporter",
			Subsystem: "storage",
			Name:      "records_duplicate_total",
			Help:      "Records skipped because an identical record was already stored.",
		}, []string{"kind"}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hkreporter",
			Subsystem: "publish",
			Name:      "messages_total",
			Help:      "Record messages handed to Kafka by kind and result.",
		}, []string{"kind", "result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hkreporter",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hkreporter",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		m.conversions, m.stored, m.duplicates, m.published, m.requests, m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveConversion counts one conversion attempt. The result label is
// "ok" or the failure kind.
func (m *Metrics) ObserveConversion(kind models.Kind, direction string, err error) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(string(kind), direction, resultLabel(err)).Inc()
}

// RecordsStored counts inserted and duplicate records of one kind.
func (m *Metrics) RecordsStored(kind models.Kind, inserted, duplicates int) {
	if m == nil {
		return
	}
	if inserted > 0 {
		m.stored.WithLabelValues(string(kind)).Add(float64(inserted))
	}
	if duplicates > 0 {
		m.duplicates.WithLabelValues(string(kind)).Add(float64(duplicates))
	}
}

// RecordsPublished counts messages written to, or failed for, one kind's topic.
func (m *Metrics) RecordsPublished(kind models.Kind, n int, err error) {
	if m == nil || n == 0 {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.published.WithLabelValues(string(kind), result).Add(float64(n))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if k := hkerror.KindOf(err); k != 0 {
		return strings.ReplaceAll(k.String(), " ", "_")
	}
	return "error"
}
