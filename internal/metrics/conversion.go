// Package metrics holds the Prometheus collectors for conversions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeInvalid    = "invalid"
	OutcomeFailed     = "failed"
	OutcomeTimeout    = "timeout"
	OutcomeUnexpected = "error"
)

// Conversion records conversion counts, latency and converted page counts per mode.
type Conversion struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	pages    *prometheus.HistogramVec
}

// NewConversion creates the collectors and registers them on reg.
func NewConversion(reg prometheus.Registerer) (*Conversion, error) {
	m := &Conversion{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conversions_total",
			Help: "Conversions by mode and outcome.",
		}, []string{"mode", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "conversion_duration_seconds",
			Help:    "Time spent converting a document.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"mode"}),
		pages: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "conversion_pages",
			Help:    "Pages per successful conversion.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"mode"}),
	}
	for _, c := range []prometheus.Collector{m.total, m.duration, m.pages} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records one finished conversion. A nil receiver is a no-op.
func (m *Conversion) Observe(mode, outcome string, elapsed time.Duration, pages int) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(mode, outcome).Inc()
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
	if outcome == OutcomeSuccess {
		m.pages.WithLabelValues(mode).Observe(float64(pages))
	}
}
