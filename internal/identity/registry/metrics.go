package registry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics observes eligibility checks.
type Metrics struct {
	Verifications        *prometheus.CounterVec
	VerificationDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetgate_identity_verifications_total",
			Help: "Eligibility checks by result",
		}, []string{"result"}), // result: "verified", "unregistered", "missing_claim", "error"
		VerificationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "assetgate_identity_verification_duration_seconds",
			Help:    "Duration of an eligibility check across all required topics",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
	}
}

func (m *Metrics) observe(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(result).Inc()
	m.VerificationDuration.Observe(d.Seconds())
}
