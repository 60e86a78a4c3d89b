package pkgmetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tableview"

// Upload results used as the "result" label of UploadsTotal.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

// Row kinds used as the "kind" label of RowsParsed.
const (
	RowValid   = "valid"
	RowInvalid = "invalid"
)

// Metrics groups every collector the service records into.
type Metrics struct {
	registry *prometheus.Registry

	UploadsTotal   *prometheus.CounterVec
	RejectedTotal  *prometheus.CounterVec
	RowsParsed     *prometheus.CounterVec
	QueriesTotal   prometheus.Counter
	CacheEntries   prometheus.Gauge
	CacheEvictions prometheus.Counter
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		UploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploaded files by outcome.",
		}, []string{"result"}),
		RejectedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_rejected_total",
			Help:      "Refused uploads by reason.",
		}, []string{"reason"}),
		RowsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_parsed_total",
			Help:      "Data rows seen by the parser, split by valid and invalid.",
		}, []string{"kind"}),
		QueriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Page queries served against cached tables.",
		}),
		CacheEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Tables currently held in the cache, expired but unswept entries included.",
		}),
		CacheEvictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Tables removed from the cache after their TTL elapsed.",
		}),
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
