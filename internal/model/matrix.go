package model

import (
	"fmt"

	"digit-softmax/internal/dataset"
)

// Matrix is a dense row-major rows x cols matrix. Indexing outside the
// declared shape panics.
type Matrix[F dataset.Float] struct {
	rows, cols int
	data       []F
}

// NewMatrix allocates a zero-filled matrix.
func NewMatrix[F dataset.Float](rows, cols int) *Matrix[F] {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("model: invalid matrix shape %dx%d", rows, cols))
	}
	return &Matrix[F]{rows: rows, cols: cols, data: make([]F, rows*cols)}
}

// Rows returns the row count.
func (m *Matrix[F]) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix[F]) Cols() int { return m.cols }

// At returns element (r, c).
func (m *Matrix[F]) At(r, c int) F {
	m.check(r, c)
	return m.data[r*m.cols+c]
}

// Set stores v at (r, c).
func (m *Matrix[F]) Set(r, c int, v F) {
	m.check(r, c)
	m.data[r*m.cols+c] = v
}

// Row returns row r as a slice aliasing the matrix storage.
func (m *Matrix[F]) Row(r int) []F {
	m.check(r, 0)
	start := r * m.cols
	return m.data[start : start+m.cols : start+m.cols]
}

func (m *Matrix[F]) check(r, c int) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("model: index (%d,%d) out of range for %dx%d matrix", r, c, m.rows, m.cols))
	}
}
