package model

import (
	"errors"
	"fmt"
	"math"

	"digit-softmax/internal/dataset"
)

// Default model geometry: one row per digit, one column per pixel.
const (
	NumClasses  = 10
	NumFeatures = dataset.ImageSize
)

// minProb bounds the probability fed to log when reporting loss.
const minProb = 1e-12

var (
	// ErrDimension indicates an input whose length does not match the weight columns.
	ErrDimension = errors.New("model: input dimension mismatch")
	// ErrLabelRange indicates a training label outside [0, classes).
	ErrLabelRange = errors.New("model: label out of range")
)

// Classifier is a bias-free linear softmax model over F-precision weights.
type Classifier[F dataset.Float] struct {
	w *Matrix[F]
}

// NewClassifier returns a classifier with all-zero weights.
func NewClassifier[F dataset.Float](classes, features int) *Classifier[F] {
	return &Classifier[F]{w: NewMatrix[F](classes, features)}
}

// NewDigitClassifier returns a zero classifier sized for 28x28 digits.
func NewDigitClassifier[F dataset.Float]() *Classifier[F] {
	return NewClassifier[F](NumClasses, NumFeatures)
}

// Weights exposes the weight matrix. Callers must treat it as read-only.
func (m *Classifier[F]) Weights() *Matrix[F] {
	return m.w
}

// Classes returns the number of output classes.
func (m *Classifier[F]) Classes() int { return m.w.Rows() }

// Forward computes logits[c] = sum_k W[c][k] * pixels[k].
func (m *Classifier[F]) Forward(pixels []F) ([]float64, error) {
	if len(pixels) != m.w.Cols() {
		return nil, fmt.Errorf("%w: got %d features, want %d", ErrDimension, len(pixels), m.w.Cols())
	}
	logits := make([]float64, m.w.Rows())
	for c := range logits {
		var sum float64
		for k, wk := range m.w.Row(c) {
			sum += float64(wk) * float64(pixels[k])
		}
		logits[c] = sum
	}
	return logits, nil
}

// Predict returns the class with the largest logit, lowest index on ties.
func (m *Classifier[F]) Predict(pixels []F) (int, error) {
	logits, err := m.Forward(pixels)
	if err != nil {
		return 0, err
	}
	return Argmax(logits), nil
}

// Step performs one online SGD update for a single example and returns its
// cross-entropy loss measured before the update.
func (m *Classifier[F]) Step(pixels []F, label int, lr float64) (float64, error) {
	if label < 0 || label >= m.w.Rows() {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrLabelRange, label, m.w.Rows())
	}
	logits, err := m.Forward(pixels)
	if err != nil {
		return 0, err
	}
	probs := Softmax(logits)
	loss := -math.Log(math.Max(probs[label], minProb))

	for c, p := range probs {
		target := 0.0
		if c == label {
			target = 1.0
		}
		errc := target - p
		row := m.w.Row(c)
		for k := range row {
			row[k] += F(lr * errc * float64(pixels[k]))
		}
	}
	return loss, nil
}

// Softmax returns exp(x - max) / sum(exp(x - max)).
func Softmax(logits []float64) []float64 {
	if len(logits) == 0 {
		return nil
	}
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}
	out := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		out[i] = math.Exp(v - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Argmax returns the index of the largest value. A later index replaces the
// current best only when strictly greater. Empty input yields 0.
func Argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
