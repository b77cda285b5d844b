package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultNamespace = "hadeed"

// Metrics holds the collectors exported on /metrics
type Metrics struct {
	namespace string
	registry  *prometheus.Registry

	storeDuration  *prometheus.HistogramVec
	storeRequests  *prometheus.CounterVec
	resourcesAdded *prometheus.CounterVec
	formSessions   prometheus.Gauge
	apiErrors      *prometheus.CounterVec
}

// New creates a Metrics with its own registry so tests and multiple servers
// in one process do not collide
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	m := &Metrics{
		namespace: FmtFixer(namespace),
		registry:  prometheus.NewRegistry(),
	}
	m.registry.MustRegister(collectors.NewGoCollector())
	m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m.storeDuration = m.newHistogramVec("store", "request_duration_seconds", []string{"op"})
	m.storeRequests = m.newCounterVec("store", "requests_total", []string{"op", "result"})
	m.resourcesAdded = m.newCounterVec("resources", "added_total", []string{"type"})
	m.apiErrors = m.newCounterVec("api", "errors_total", []string{"method", "api", "status"})
	m.formSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "form",
		Name:      "sessions",
		Help:      "number of open visitor form sessions",
	})
	m.registry.MustRegister(m.formSessions)

	return m
}

func (m *Metrics) newCounterVec(system, name string, labels []string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: FmtFixer(system),
			Name:      FmtFixer(name),
			Help:      fmt.Sprintf("%s count of /%s/%s", name, m.namespace, system),
		},
		labels,
	)
	m.registry.MustRegister(vec)
	return vec
}

func (m *Metrics) newHistogramVec(system, name string, labels []string) *prometheus.HistogramVec {
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: FmtFixer(system),
			Name:      FmtFixer(name),
			Help:      fmt.Sprintf("%s duration of /%s/%s", name, m.namespace, system),
			Buckets:   prometheus.DefBuckets,
		},
		labels,
	)
	m.registry.MustRegister(vec)
	return vec
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(
		m.registry, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}),
	)
}

// StoreTimer starts timing a store operation
func (m *Metrics) StoreTimer(op string) *prometheus.Timer {
	return prometheus.NewTimer(m.storeDuration.WithLabelValues(op))
}

// StoreRequestInc counts a finished store operation
func (m *Metrics) StoreRequestInc(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storeRequests.WithLabelValues(op, result).Inc()
}

// ResourceAddedInc counts a stored resource by type
func (m *Metrics) ResourceAddedInc(resourceType string) {
	m.resourcesAdded.WithLabelValues(resourceType).Inc()
}

// FormSessionsSet records the number of open form sessions
func (m *Metrics) FormSessionsSet(n int) {
	m.formSessions.Set(float64(n))
}

// APIErrorInc counts an error response from the JSON API
func (m *Metrics) APIErrorInc(method, api string, status int) {
	m.apiErrors.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func FmtFixer(in string) string {
	return strings.Replace(strings.Replace(in, ".", "_", -1), "-", "_", -1)
}
