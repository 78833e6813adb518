// Package metrics provides Prometheus metrics collection for the loan form.
// The form has no network surface, so metrics live in a private registry and
// are written to a node-exporter textfile when a session ends.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verdict and validation labels
const (
	VerdictApproved = "approved"
	VerdictDenied   = "denied"
	VerdictError    = "error"

	KindNumeric     = "numeric"
	KindCategorical = "categorical"
)

// Metrics holds all Prometheus metrics for the form.
type Metrics struct {
	registry *prometheus.Registry

	// Form metrics
	Verdicts           *prometheus.CounterVec // Verdicts rendered, by outcome
	ValidationErrors   *prometheus.CounterVec // Rejected submissions, by kind
	UnknownOccupations prometheus.Counter     // Submissions with an occupation outside the schema

	// ML metrics
	MLPredictions prometheus.Counter   // Total number of model predictions made
	MLFailures    prometheus.Counter   // Total number of scaling or prediction failures
	MLLatency     prometheus.Histogram // Scale + predict latency in seconds
	ModelLoadTime prometheus.Gauge     // Unix time the artifacts were loaded
}

// New creates metrics registered on a fresh private registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry creates metrics with a custom registry (useful for testing).
func NewWithRegistry(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		Verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_verdicts_total",
			Help: "Total number of verdicts rendered, by outcome",
		}, []string{"verdict"}),
		ValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_validation_errors_total",
			Help: "Total number of submissions rejected by input validation",
		}, []string{"kind"}),
		UnknownOccupations: factory.NewCounter(prometheus.CounterOpts{
			Name: "loan_unknown_occupations_total",
			Help: "Total number of submissions whose occupation matched no schema column",
		}),
		MLPredictions: factory.NewCounter(prometheus.CounterOpts{
			Name: "ml_predictions_total",
			Help: "Total number of ML predictions made",
		}),
		MLFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "ml_failures_total",
			Help: "Total number of ML prediction failures",
		}),
		MLLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ml_latency_seconds",
			Help:    "ML prediction latency in seconds (scale + predict)",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}),
		ModelLoadTime: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ml_model_load_timestamp_seconds",
			Help: "Unix time the model artifacts were loaded",
		}),
	}
}

// Registry exposes the underlying registry as a gatherer.
func (m *Metrics) Registry() prometheus.Gatherer {
	return m.registry
}

// MarkModelLoaded records the artifact load time.
func (m *Metrics) MarkModelLoaded(t time.Time) {
	m.ModelLoadTime.Set(float64(t.Unix()))
}

// WriteTextfile writes all metrics in the Prometheus text format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
