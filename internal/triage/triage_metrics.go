package triage

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the triage subsystem.
type Metrics struct {
	ClassificationsTotal *prometheus.CounterVec
	BatchesTotal         prometheus.Counter
	BatchSize            prometheus.Histogram
	ImpactTotal          prometheus.Counter
	DispatchesTotal      *prometheus.CounterVec
	DispatchAttempts     prometheus.Histogram
}

// NewMetrics registers and returns triage metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ClassificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beacon_classifications_total",
			Help: "Total classified tickets by category and urgency.",
		}, []string{"category", "urgency"}),
		BatchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beacon_batches_total",
			Help: "Total classified ticket batches.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "beacon_batch_size",
			Help:    "Tickets per classified batch.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1 .. 512
		}),
		ImpactTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beacon_impact_dollars_total",
			Help: "Summed estimated dollar impact across classified tickets.",
		}),
		DispatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beacon_dispatches_total",
			Help: "Total alert dispatches by mode and outcome.",
		}, []string{"mode", "outcome"}),
		DispatchAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "beacon_dispatch_attempts",
			Help:    "Delivery attempts per dispatch.",
			Buckets: prometheus.LinearBuckets(0, 1, 5), // 0 .. 4
		}),
	}

	reg.MustRegister(
		m.ClassificationsTotal,
		m.BatchesTotal,
		m.BatchSize,
		m.ImpactTotal,
		m.DispatchesTotal,
		m.DispatchAttempts,
	)

	return m
}

func (m *Metrics) observeDispatch(mode string, res bool, attempts int) {
	if m == nil {
		return
	}
	outcome := "success"
	if !res {
		outcome = "failure"
	}
	m.DispatchesTotal.WithLabelValues(mode, outcome).Inc()
	m.DispatchAttempts.Observe(float64(attempts))
}
