package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters for the lead submission pipeline.
type LeadMetrics struct {
	submittedTotal *prometheus.CounterVec
	persistTotal   *prometheus.CounterVec
	mirrorTotal    *prometheus.CounterVec
}

// NewLeadMetrics registers the lead counters on reg, or the default registerer.
func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submittedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ignite",
			Subsystem: "leads",
			Name:      "submitted_total",
			Help:      "Lead submissions by kind and validation outcome",
		}, []string{"kind", "outcome"}),
		persistTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ignite",
			Subsystem: "leads",
			Name:      "persist_total",
			Help:      "Document store writes by result",
		}, []string{"result"}),
		mirrorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ignite",
			Subsystem: "leads",
			Name:      "mirror_total",
			Help:      "Best-effort mirror attempts by mirror and result",
		}, []string{"mirror", "result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submittedTotal, m.persistTotal, m.mirrorTotal)
	return m
}

// ObserveSubmission counts one submission of kind with its validation outcome.
func (m *LeadMetrics) ObserveSubmission(kind, outcome string) {
	if m == nil {
		return
	}
	m.submittedTotal.WithLabelValues(kind, outcome).Inc()
}

// ObservePersist counts one document store write by result.
func (m *LeadMetrics) ObservePersist(result string) {
	if m == nil {
		return
	}
	m.persistTotal.WithLabelValues(result).Inc()
}

// ObserveMirror counts one mirror attempt; a nil err is recorded as ok.
func (m *LeadMetrics) ObserveMirror(mirror string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.mirrorTotal.WithLabelValues(mirror, result).Inc()
}
