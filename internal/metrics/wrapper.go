package metrics

// MetricsWrapper adapts Metrics to the narrow interfaces the ml and approval
// packages depend on.
type MetricsWrapper struct {
	m *Metrics
}

func NewWrapper(m *Metrics) *MetricsWrapper {
	return &MetricsWrapper{m: m}
}

func (w *MetricsWrapper) MLPredictionsInc() {
	w.m.MLPredictions.Inc()
}

func (w *MetricsWrapper) MLFailuresInc() {
	w.m.MLFailures.Inc()
}

func (w *MetricsWrapper) MLLatencyObserve(v float64) {
	w.m.MLLatency.Observe(v)
}

func (w *MetricsWrapper) VerdictInc(verdict string) {
	w.m.Verdicts.WithLabelValues(verdict).Inc()
}

func (w *MetricsWrapper) ValidationErrorInc(kind string) {
	w.m.ValidationErrors.WithLabelValues(kind).Inc()
}

func (w *MetricsWrapper) UnknownOccupationInc() {
	w.m.UnknownOccupations.Inc()
}
