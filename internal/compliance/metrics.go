package compliance

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics observes the admission chain.
type Metrics struct {
	Checks        *prometheus.CounterVec
	Rejections    *prometheus.CounterVec
	CheckDuration prometheus.Histogram
	Modules       prometheus.Gauge
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetgate_compliance_checks_total",
			Help: "Admission checks by outcome",
		}, []string{"outcome"}), // outcome: "allowed", "rejected"
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetgate_compliance_module_rejections_total",
			Help: "Rejections by module kind",
		}, []string{"kind"}),
		CheckDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "assetgate_compliance_check_duration_seconds",
			Help:    "Duration of one pass over the module chain",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		Modules: factory.NewGauge(prometheus.GaugeOpts{
			Name: "assetgate_compliance_modules",
			Help: "Number of modules bound to the compliance",
		}),
	}
}

func (m *Metrics) observeCheck(allowed bool, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "allowed"
	if !allowed {
		outcome = "rejected"
	}
	m.Checks.WithLabelValues(outcome).Inc()
	m.CheckDuration.Observe(d.Seconds())
}

func (m *Metrics) incRejection(kind string) {
	if m != nil {
		m.Rejections.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) setModules(n int) {
	if m != nil {
		m.Modules.Set(float64(n))
	}
}
