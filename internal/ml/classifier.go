package ml

import (
	"errors"
	"fmt"
	"math"
)

const leafChild = -1

// TreeNode is one node of a CART tree exported in pre-order. Leaves have
// both children set to -1.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Class     int       `json:"class"`
	Value     []float64 `json:"value,omitempty"`
}

func (n TreeNode) isLeaf() bool { return n.Left == leafChild && n.Right == leafChild }

// DecisionTree walks x[feature] <= threshold to the left child until a leaf.
type DecisionTree struct {
	NFeatures int        `json:"n_features"`
	Classes   []int      `json:"classes"`
	Nodes     []TreeNode `json:"nodes"`
}

func (dt *DecisionTree) Features() int { return dt.NFeatures }

// validate checks node links so Predict always terminates.
func (dt *DecisionTree) validate() error {
	if len(dt.Nodes) == 0 {
		return errors.New("decision tree has no nodes")
	}
	if dt.NFeatures <= 0 {
		return fmt.Errorf("decision tree n_features must be positive, got %d", dt.NFeatures)
	}
	for i, n := range dt.Nodes {
		if n.isLeaf() {
			if len(n.Value) > 0 && len(n.Value) != len(dt.Classes) {
				return fmt.Errorf("node %d: value has %d entries, expected %d classes", i, len(n.Value), len(dt.Classes))
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= dt.NFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		// Pre-order export: children always come after their parent.
		if n.Left <= i || n.Left >= len(dt.Nodes) || n.Right <= i || n.Right >= len(dt.Nodes) {
			return fmt.Errorf("node %d: invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

func (dt *DecisionTree) Predict(x []float64) (int, error) {
	if len(dt.Nodes) == 0 {
		return 0, errors.New("model not trained")
	}
	if len(x) != dt.NFeatures {
		return 0, fmt.Errorf("expected %d features, got %d", dt.NFeatures, len(x))
	}

	idx := 0
	for {
		node := dt.Nodes[idx]
		if node.isLeaf() {
			return dt.leafClass(node), nil
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx <= 0 || idx >= len(dt.Nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

// leafClass prefers the class distribution when the export carries one.
func (dt *DecisionTree) leafClass(n TreeNode) int {
	if len(n.Value) == 0 || len(dt.Classes) == 0 {
		return n.Class
	}
	best := 0
	for i, v := range n.Value {
		if v > n.Value[best] {
			best = i
		}
	}
	return dt.Classes[best]
}

// LogisticRegression is a binary linear model: label 1 when w·x + b > 0.
type LogisticRegression struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	Classes   []int     `json:"classes"`
}

func (lr *LogisticRegression) Features() int { return len(lr.Coef) }

func (lr *LogisticRegression) validate() error {
	if len(lr.Coef) == 0 {
		return errors.New("logistic regression has no coefficients")
	}
	if len(lr.Classes) != 0 && len(lr.Classes) != 2 {
		return fmt.Errorf("logistic regression must have 2 classes, got %d", len(lr.Classes))
	}
	return nil
}

func (lr *LogisticRegression) Predict(x []float64) (int, error) {
	if len(x) != len(lr.Coef) {
		return 0, fmt.Errorf("expected %d features, got %d", len(lr.Coef), len(x))
	}
	z := lr.Intercept
	for i, w := range lr.Coef {
		z += w * x[i]
	}
	if math.IsNaN(z) {
		return 0, errors.New("decision function is NaN")
	}

	neg, pos := 0, 1
	if len(lr.Classes) == 2 {
		neg, pos = lr.Classes[0], lr.Classes[1]
	}
	if z > 0 {
		return pos, nil
	}
	return neg, nil
}
