package model

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftmaxSumsToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 100; trial++ {
		logits := randomLogits(rng, 10, 50)
		sum := 0.0
		for _, p := range Softmax(logits) {
			assert.True(t, p >= 0 && p <= 1)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestSoftmaxTranslationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 50; trial++ {
		logits := randomLogits(rng, 10, 20)
		shift := rng.Float64()*200 - 100
		shifted := make([]float64, len(logits))
		for i, v := range logits {
			shifted[i] = v + shift
		}
		a, b := Softmax(logits), Softmax(shifted)
		for i := range a {
			assert.InDelta(t, a[i], b[i], 1e-9)
		}
	}
}

func TestSoftmaxExtremeLogits(t *testing.T) {
	probs := Softmax([]float64{1000, 1000, -1000})
	assert.InDelta(t, 0.5, probs[0], 1e-12)
	assert.InDelta(t, 0.5, probs[1], 1e-12)
	assert.Equal(t, 0.0, probs[2])
	for _, p := range Softmax([]float64{710, 1e6, -1e6}) {
		assert.False(t, math.IsNaN(p) || math.IsInf(p, 0))
	}
	assert.Nil(t, Softmax(nil))
}

func TestArgmaxMatchesSoftmaxArgmax(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 200; trial++ {
		logits := randomLogits(rng, 10, 30)
		assert.Equal(t, Argmax(logits), Argmax(Softmax(logits)))
	}
}

func TestArgmaxTieBreaksLowest(t *testing.T) {
	assert.Equal(t, 2, Argmax([]float64{0, 1, 3, 3, 3}))
	assert.Equal(t, 0, Argmax(make([]float64, 10)))
	assert.Equal(t, 1, Argmax([]float64{-1, 5, 2, 5}))
	assert.Equal(t, 0, Argmax(nil))
}

func TestPredictTieBreaksLowest(t *testing.T) {
	clf := NewClassifier[float64](4, 2)
	// classes 1 and 3 share the maximal logit for input {1, 1}
	clf.Weights().Set(1, 0, 2)
	clf.Weights().Set(3, 1, 2)
	clf.Weights().Set(2, 0, 1)

	got, err := clf.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = NewDigitClassifier[float64]().Predict(make([]float64, NumFeatures))
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestForwardIsMatrixVectorProduct(t *testing.T) {
	clf := NewClassifier[float64](2, 3)
	w := clf.Weights()
	w.Set(0, 0, 1)
	w.Set(0, 1, 2)
	w.Set(0, 2, 3)
	w.Set(1, 0, -1)
	w.Set(1, 2, 0.5)

	logits, err := clf.Forward([]float64{1, 0.5, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 0}, logits)
}

func TestForwardDimensionMismatch(t *testing.T) {
	clf := NewDigitClassifier[float64]()
	_, err := clf.Forward(make([]float64, 10))
	require.ErrorIs(t, err, ErrDimension)
	_, err = clf.Predict(nil)
	require.ErrorIs(t, err, ErrDimension)
	_, err = clf.Step(make([]float64, 3), 1, 0.01)
	require.ErrorIs(t, err, ErrDimension)
}

func TestStepFromZeroWeights(t *testing.T) {
	clf := NewDigitClassifier[float64]()
	pixels := make([]float64, NumFeatures)
	for k := range pixels {
		pixels[k] = float64(k%256) / 255.0
	}
	const label = 3

	loss, err := clf.Step(pixels, label, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(10), loss, 1e-12)

	// typed operands so the products round at run time like the update does
	lr, hit, miss := 0.01, 0.9, -0.1
	w := clf.Weights()
	for c := 0; c < NumClasses; c++ {
		for k, p := range pixels {
			want := lr * miss * p
			if c == label {
				want = lr * hit * p
			}
			if w.At(c, k) != want {
				t.Fatalf("W[%d][%d]=%v want %v", c, k, w.At(c, k), want)
			}
		}
	}
}

func TestStepMovesTowardLabel(t *testing.T) {
	clf := NewClassifier[float32](3, 4)
	pixels := []float32{0.1, 0.2, 0.3, 0.4}
	first, err := clf.Step(pixels, 2, 0.5)
	require.NoError(t, err)
	second, err := clf.Step(pixels, 2, 0.5)
	require.NoError(t, err)
	assert.Less(t, second, first)

	got, err := clf.Predict(pixels)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestStepRejectsOutOfRangeLabel(t *testing.T) {
	clf := NewDigitClassifier[float64]()
	pixels := make([]float64, NumFeatures)
	_, err := clf.Step(pixels, 10, 0.01)
	require.ErrorIs(t, err, ErrLabelRange)
	_, err = clf.Step(pixels, -1, 0.01)
	require.ErrorIs(t, err, ErrLabelRange)
	assert.Zero(t, clf.Weights().At(0, 0))
}

func randomLogits(rng *rand.Rand, n int, scale float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * scale
	}
	return out
}
