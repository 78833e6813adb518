// Package ml provides the inference side of the loan approval model.
// It loads externally trained classifiers and fitted scalers from their JSON
// export, and wraps them in a Predictor that scales a positional feature
// vector, classifies it and records metrics.
//
// Artifacts are opaque to the rest of the program: nothing here knows what a
// column means, only how many there are.
package ml

// PredictorInterface defines the interface for the predictor used by the form.
type PredictorInterface interface {
	// Predict scales the features and returns the model's class label.
	Predict(features []float64) (int, error)

	// Features returns the vector length the model was trained on.
	Features() int
}

// Classifier is a trained model consuming an already scaled vector.
type Classifier interface {
	Predict(x []float64) (int, error)
	Features() int
}

// Scaler is a fitted per-column transform applied before classification.
type Scaler interface {
	Transform(x []float64) ([]float64, error)
	Features() int
}
