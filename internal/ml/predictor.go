package ml

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// MetricsInterface defines metrics methods needed by the predictor
type MetricsInterface interface {
	MLPredictionsInc()
	MLFailuresInc()
	MLLatencyObserve(float64)
}

// Predictor scales a feature vector and classifies it. Both artifacts are
// read-only after construction.
type Predictor struct {
	classifier Classifier
	scaler     Scaler
	metrics    MetricsInterface
}

func New(classifier Classifier, scaler Scaler) (*Predictor, error) {
	return NewWithMetrics(classifier, scaler, nil)
}

func NewWithMetrics(classifier Classifier, scaler Scaler, metrics MetricsInterface) (*Predictor, error) {
	if classifier == nil || scaler == nil {
		return nil, fmt.Errorf("classifier and scaler are required")
	}
	if classifier.Features() != scaler.Features() {
		return nil, fmt.Errorf("scaler expects %d features but model expects %d", scaler.Features(), classifier.Features())
	}

	log.Debug().
		Str("model", fmt.Sprintf("%T", classifier)).
		Str("scaler", fmt.Sprintf("%T", scaler)).
		Int("features", classifier.Features()).
		Msg("Predictor ready")

	return &Predictor{classifier: classifier, scaler: scaler, metrics: metrics}, nil
}

func (p *Predictor) Features() int { return p.classifier.Features() }

// Predict returns the class label for the unscaled features.
func (p *Predictor) Predict(features []float64) (int, error) {
	if p == nil {
		return 0, fmt.Errorf("predictor is nil")
	}

	start := time.Now()
	defer func() {
		if p.metrics != nil {
			p.metrics.MLLatencyObserve(time.Since(start).Seconds())
		}
	}()

	label, err := p.predictInternal(features)
	if err != nil {
		if p.metrics != nil {
			p.metrics.MLFailuresInc()
		}
		return 0, err
	}

	if p.metrics != nil {
		p.metrics.MLPredictionsInc()
	}
	return label, nil
}

func (p *Predictor) predictInternal(features []float64) (int, error) {
	if len(features) != p.Features() {
		return 0, fmt.Errorf("expected %d features, got %d", p.Features(), len(features))
	}

	scaled, err := p.scaler.Transform(features)
	if err != nil {
		return 0, fmt.Errorf("scale features: %w", err)
	}

	// Validate feature values for NaN/Inf
	for i, f := range scaled {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			log.Error().Int("index", i).Floats64("features", features).Msg("Scaled feature is not finite")
			return 0, fmt.Errorf("scaled feature %d is not finite", i)
		}
	}

	label, err := p.classifier.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("classify: %w", err)
	}

	log.Debug().
		Floats64("features", features).
		Floats64("scaled", scaled).
		Int("prediction", label).
		Msg("Prediction successful")

	return label, nil
}
