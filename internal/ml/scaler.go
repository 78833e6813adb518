package ml

import (
	"fmt"
)

// StandardScaler applies (x - mean) / scale per column.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) Features() int { return len(s.Mean) }

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("standard scaler mean/scale length mismatch: %d/%d", len(s.Mean), len(s.Scale))
	}
	return nil
}

func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		// Constant columns are exported with scale 0; they only get centred.
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}

// MinMaxScaler applies x*scale + min per column.
type MinMaxScaler struct {
	Min   []float64 `json:"min"`
	Scale []float64 `json:"scale"`
}

func (s *MinMaxScaler) Features() int { return len(s.Min) }

func (s *MinMaxScaler) validate() error {
	if len(s.Min) == 0 || len(s.Min) != len(s.Scale) {
		return fmt.Errorf("minmax scaler min/scale length mismatch: %d/%d", len(s.Min), len(s.Scale))
	}
	return nil
}

func (s *MinMaxScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Min) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Min), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v*s.Scale[i] + s.Min[i]
	}
	return out, nil
}

// IdentityScaler passes vectors through for models trained on raw values.
type IdentityScaler struct {
	NFeatures int `json:"n_features"`
}

func (s *IdentityScaler) Features() int { return s.NFeatures }

func (s *IdentityScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != s.NFeatures {
		return nil, fmt.Errorf("scaler expects %d features, got %d", s.NFeatures, len(x))
	}
	return append([]float64(nil), x...), nil
}
