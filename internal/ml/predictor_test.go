package ml

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClassifier records the vectors it is asked to classify.
type stubClassifier struct {
	n     int
	label int
	err   error
	seen  [][]float64
}

func (s *stubClassifier) Features() int { return s.n }

func (s *stubClassifier) Predict(x []float64) (int, error) {
	s.seen = append(s.seen, append([]float64(nil), x...))
	return s.label, s.err
}

func TestPredictor_ScalesBeforeClassifying(t *testing.T) {
	clf := &stubClassifier{n: 2, label: 1}
	scaler := &StandardScaler{Mean: []float64{10, 100}, Scale: []float64{2, 50}}
	metrics := &MockMetrics{}

	p, err := NewWithMetrics(clf, scaler, metrics)
	require.NoError(t, err)

	label, err := p.Predict([]float64{14, 0})
	require.NoError(t, err)

	assert.Equal(t, 1, label)
	require.Len(t, clf.seen, 1)
	assert.Equal(t, []float64{2, -2}, clf.seen[0])
	assert.Equal(t, 1, metrics.predictions)
	assert.Equal(t, 0, metrics.failures)
	assert.Equal(t, 1, metrics.latencyObs)
}

func TestPredictor_DimensionMismatch(t *testing.T) {
	_, err := New(&stubClassifier{n: 3}, &IdentityScaler{NFeatures: 2})
	assert.Error(t, err)

	p, err := New(&stubClassifier{n: 2}, &IdentityScaler{NFeatures: 2})
	require.NoError(t, err)

	_, err = p.Predict([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestPredictor_ClassifierFailure(t *testing.T) {
	clf := &stubClassifier{n: 1, err: errors.New("boom")}
	metrics := &MockMetrics{}
	p, err := NewWithMetrics(clf, &IdentityScaler{NFeatures: 1}, metrics)
	require.NoError(t, err)

	_, err = p.Predict([]float64{1})
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 1, metrics.failures)
	assert.Equal(t, 0, metrics.predictions)
}

func TestPredictor_RejectsNonFiniteScaledValues(t *testing.T) {
	clf := &stubClassifier{n: 1}
	p, err := New(clf, &IdentityScaler{NFeatures: 1})
	require.NoError(t, err)

	_, err = p.Predict([]float64{math.Inf(1)})
	assert.Error(t, err)
	assert.Empty(t, clf.seen, "classifier must not run on non-finite input")
}

func TestPredictor_NilSafety(t *testing.T) {
	var predictor *Predictor

	_, err := predictor.Predict([]float64{0.1})
	assert.Error(t, err)

	_, err = New(nil, &IdentityScaler{NFeatures: 1})
	assert.Error(t, err)
}
