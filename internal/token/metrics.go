package token

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics observes ledger movements.
type Metrics struct {
	Operations  *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	TotalSupply prometheus.Gauge
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetgate_token_operations_total",
			Help: "Ledger operations by kind and outcome",
		}, []string{"operation", "outcome"}), // outcome: "settled", "rejected", "error"
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetgate_token_rejections_total",
			Help: "Rejected ledger operations by error code",
		}, []string{"operation", "code"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assetgate_token_operation_duration_seconds",
			Help:    "Duration of ledger operations including identity and compliance checks",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
		TotalSupply: factory.NewGauge(prometheus.GaugeOpts{
			Name: "assetgate_token_total_supply",
			Help: "Current total supply in base units",
		}),
	}
}

func (m *Metrics) observe(operation, outcome, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
	if outcome == "rejected" {
		m.Rejections.WithLabelValues(operation, code).Inc()
	}
	m.Duration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) setSupply(supply uint64) {
	if m != nil {
		m.TotalSupply.Set(float64(supply))
	}
}
