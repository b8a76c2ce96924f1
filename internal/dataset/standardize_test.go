package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardize(t *testing.T) {
	pixels := []float64{0, 0.25, 0.5, 0.75, 1}
	Standardize(pixels)

	var mean, sq float64
	for _, p := range pixels {
		mean += p
	}
	mean /= float64(len(pixels))
	for _, p := range pixels {
		sq += (p - mean) * (p - mean)
	}
	assert.InDelta(t, 0, mean, 1e-12)
	assert.InDelta(t, 1, math.Sqrt(sq/float64(len(pixels))), 1e-6)
	assert.Less(t, pixels[0], pixels[4])
}

func TestStandardizeConstantImage(t *testing.T) {
	pixels := []float32{0.5, 0.5, 0.5}
	Standardize(pixels)
	for _, p := range pixels {
		assert.Equal(t, float32(0), p)
	}
	Standardize([]float64{})
}
