package metrics

import "github.com/prometheus/client_golang/prometheus"

// FollowupMetrics exposes counters/histograms for a follow-up run.
type FollowupMetrics struct {
	decisionsTotal     *prometheus.CounterVec
	deliveriesTotal    *prometheus.CounterVec
	deliveryAttempts   prometheus.Counter
	generationFailures prometheus.Counter
	invalidRows        prometheus.Counter
	generationLatency  prometheus.Histogram
}

func NewFollowupMetrics(reg prometheus.Registerer) *FollowupMetrics {
	m := &FollowupMetrics{
		decisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gtm",
			Subsystem: "followup",
			Name:      "decisions_total",
			Help:      "Leads decided, by decision",
		}, []string{"decision"}),
		deliveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gtm",
			Subsystem: "followup",
			Name:      "deliveries_total",
			Help:      "Terminal delivery outcomes, by status",
		}, []string{"status"}),
		deliveryAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gtm",
			Subsystem: "followup",
			Name:      "delivery_attempts_total",
			Help:      "Individual provider send attempts",
		}),
		generationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gtm",
			Subsystem: "followup",
			Name:      "generation_failures_total",
			Help:      "Generations replaced by the fallback message",
		}),
		invalidRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gtm",
			Subsystem: "followup",
			Name:      "invalid_rows_total",
			Help:      "Rows skipped for an unparseable last contact date",
		}),
		generationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gtm",
			Subsystem: "followup",
			Name:      "generation_latency_seconds",
			Help:      "Latency of message generation calls",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.decisionsTotal,
		m.deliveriesTotal,
		m.deliveryAttempts,
		m.generationFailures,
		m.invalidRows,
		m.generationLatency,
	)
	return m
}

func (m *FollowupMetrics) ObserveDecision(decision string) {
	if m == nil {
		return
	}
	m.decisionsTotal.WithLabelValues(decision).Inc()
}

func (m *FollowupMetrics) ObserveDelivery(status string) {
	if m == nil {
		return
	}
	m.deliveriesTotal.WithLabelValues(status).Inc()
}

func (m *FollowupMetrics) ObserveDeliveryAttempt() {
	if m == nil {
		return
	}
	m.deliveryAttempts.Inc()
}

func (m *FollowupMetrics) ObserveGenerationFailure() {
	if m == nil {
		return
	}
	m.generationFailures.Inc()
}

func (m *FollowupMetrics) ObserveInvalidRow() {
	if m == nil {
		return
	}
	m.invalidRows.Inc()
}

func (m *FollowupMetrics) ObserveGenerationLatency(seconds float64) {
	if m == nil {
		return
	}
	m.generationLatency.Observe(seconds)
}
