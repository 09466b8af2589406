// Package metrics holds the Prometheus collectors for audits.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trngaudit/domain/report"
)

const namespace = "trngaudit"

// Registry owns the collectors. Each instance has its own prometheus registry
// so tests and embedded servers do not share state.
type Registry struct {
	reg *prometheus.Registry

	auditsTotal   *prometheus.CounterVec
	sampleSize    prometheus.Histogram
	statistic     *prometheus.GaugeVec
	auditDuration prometheus.Histogram
}

// NewRegistry creates collectors registered on a fresh registry
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Registry{
		reg: reg,
		auditsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audits_total",
			Help:      "Completed audits by overall verdict",
		}, []string{"overall"}),
		sampleSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sample_size_bits",
			Help:      "Number of bits per audited sample",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 8),
		}),
		statistic: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "statistic_value",
			Help:      "Most recent value of each statistic",
		}, []string{"test"}),
		auditDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "audit_duration_seconds",
			Help:      "Wall time of load, battery and synthesis",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// ObserveReport records one completed audit
func (r *Registry) ObserveReport(rep *report.Report, elapsed time.Duration) {
	if r == nil || rep == nil {
		return
	}
	r.auditsTotal.WithLabelValues(string(rep.Summary.Overall)).Inc()
	r.sampleSize.Observe(float64(rep.Metadata.SampleSize))
	for _, e := range rep.Entries {
		r.statistic.WithLabelValues(string(e.Statistic.Name)).Set(e.Statistic.Value)
	}
	r.auditDuration.Observe(elapsed.Seconds())
}

// Gatherer exposes the underlying registry
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler serves the registry in the text exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
