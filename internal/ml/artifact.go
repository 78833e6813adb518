package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Artifact kinds as written by the export script.
const (
	KindDecisionTree       = "decision_tree"
	KindLogisticRegression = "logistic_regression"
	KindStandardScaler     = "standard"
	KindMinMaxScaler       = "minmax"
	KindIdentityScaler     = "identity"
)

var artifactSchemas = map[string]string{
	KindDecisionTree: `{
		"type": "object",
		"required": ["kind", "n_features", "nodes"],
		"properties": {
			"kind": {"const": "decision_tree"},
			"n_features": {"type": "integer", "minimum": 1},
			"classes": {"type": "array", "items": {"type": "integer"}},
			"nodes": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["feature", "threshold", "left", "right"],
					"properties": {
						"feature": {"type": "integer"},
						"threshold": {"type": "number"},
						"left": {"type": "integer", "minimum": -1},
						"right": {"type": "integer", "minimum": -1},
						"class": {"type": "integer"},
						"value": {"type": "array", "items": {"type": "number"}}
					}
				}
			}
		}
	}`,
	KindLogisticRegression: `{
		"type": "object",
		"required": ["kind", "coef", "intercept"],
		"properties": {
			"kind": {"const": "logistic_regression"},
			"coef": {"type": "array", "minItems": 1, "items": {"type": "number"}},
			"intercept": {"type": "number"},
			"classes": {"type": "array", "items": {"type": "integer"}}
		}
	}`,
	KindStandardScaler: `{
		"type": "object",
		"required": ["kind", "mean", "scale"],
		"properties": {
			"kind": {"const": "standard"},
			"mean": {"type": "array", "minItems": 1, "items": {"type": "number"}},
			"scale": {"type": "array", "minItems": 1, "items": {"type": "number"}}
		}
	}`,
	KindMinMaxScaler: `{
		"type": "object",
		"required": ["kind", "min", "scale"],
		"properties": {
			"kind": {"const": "minmax"},
			"min": {"type": "array", "minItems": 1, "items": {"type": "number"}},
			"scale": {"type": "array", "minItems": 1, "items": {"type": "number"}}
		}
	}`,
	KindIdentityScaler: `{
		"type": "object",
		"required": ["kind", "n_features"],
		"properties": {
			"kind": {"const": "identity"},
			"n_features": {"type": "integer", "minimum": 1}
		}
	}`,
}

const columnsSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {"type": "string", "minLength": 1}
}`

type envelope struct {
	Kind string `json:"kind"`
}

// EncodeArtifact serializes a model or scaler with its kind tag and checks
// the result against the artifact schema.
func EncodeArtifact(kind string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", kind, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%s does not encode as an object: %w", kind, err)
	}
	fields["kind"], _ = json.Marshal(kind)

	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", kind, err)
	}
	if _, err := validateArtifact(data); err != nil {
		return nil, err
	}
	return data, nil
}

// DecodeClassifier validates and decodes a classifier artifact.
func DecodeClassifier(data []byte) (Classifier, error) {
	kind, err := validateArtifact(data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindDecisionTree:
		dt := &DecisionTree{}
		if err := json.Unmarshal(data, dt); err != nil {
			return nil, fmt.Errorf("decode decision tree: %w", err)
		}
		if err := dt.validate(); err != nil {
			return nil, err
		}
		return dt, nil
	case KindLogisticRegression:
		lr := &LogisticRegression{}
		if err := json.Unmarshal(data, lr); err != nil {
			return nil, fmt.Errorf("decode logistic regression: %w", err)
		}
		if err := lr.validate(); err != nil {
			return nil, err
		}
		return lr, nil
	default:
		return nil, fmt.Errorf("unsupported model kind %q", kind)
	}
}

// DecodeScaler validates and decodes a scaler artifact.
func DecodeScaler(data []byte) (Scaler, error) {
	kind, err := validateArtifact(data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindStandardScaler:
		s := &StandardScaler{}
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("decode standard scaler: %w", err)
		}
		if err := s.validate(); err != nil {
			return nil, err
		}
		return s, nil
	case KindMinMaxScaler:
		s := &MinMaxScaler{}
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("decode minmax scaler: %w", err)
		}
		if err := s.validate(); err != nil {
			return nil, err
		}
		return s, nil
	case KindIdentityScaler:
		s := &IdentityScaler{}
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("decode identity scaler: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported scaler kind %q", kind)
	}
}

// DecodeColumns decodes the ordered feature column list.
func DecodeColumns(data []byte) ([]string, error) {
	if err := validateJSON(columnsSchema, data); err != nil {
		return nil, fmt.Errorf("feature columns: %w", err)
	}
	var cols []string
	if err := json.Unmarshal(data, &cols); err != nil {
		return nil, fmt.Errorf("decode feature columns: %w", err)
	}
	return cols, nil
}

func LoadClassifier(path string) (Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	return DecodeClassifier(data)
}

func LoadScaler(path string) (Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaler %s: %w", path, err)
	}
	return DecodeScaler(data)
}

func LoadColumns(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feature columns %s: %w", path, err)
	}
	return DecodeColumns(data)
}

func validateArtifact(data []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("artifact is not a JSON object: %w", err)
	}
	schema, ok := artifactSchemas[env.Kind]
	if !ok {
		return "", fmt.Errorf("unsupported artifact kind %q", env.Kind)
	}
	if err := validateJSON(schema, data); err != nil {
		return "", fmt.Errorf("%s artifact: %w", env.Kind, err)
	}
	return env.Kind, nil
}

func validateJSON(schema string, data []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("schema validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
