package dataset

import "gonum.org/v1/gonum/stat"

const standardizeEpsilon = 1e-8

// Standardize rescales pixels in place to zero mean and unit population
// standard deviation. Load never applies it.
func Standardize[F Float](pixels []F) {
	if len(pixels) == 0 {
		return
	}
	xs := make([]float64, len(pixels))
	for i, p := range pixels {
		xs[i] = float64(p)
	}
	mean, std := stat.PopMeanStdDev(xs, nil)
	for i, x := range xs {
		pixels[i] = F((x - mean) / (std + standardizeEpsilon))
	}
}
