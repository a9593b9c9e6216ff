// Package vectormath implements the dense-vector similarity math the
// traversal engine and in-memory adapter share: cosine similarity, a
// row-wise similarity matrix, and de-duplicating top-k selection.
package vectormath

import (
	"math"

	apperrors "github.com/brain2labs/graphtraverse/pkg/errors"
)

// Cosine computes the cosine similarity between u and v. A zero-magnitude
// vector (either input) yields 0, and any NaN/Inf result is coerced to 0 --
// the engine depends on similarity never being anything but a finite real in
// [-1, 1] (practically [0, 1] for non-negative embeddings).
func Cosine(u, v []float64) float64 {
	if len(u) == 0 || len(v) == 0 || len(u) != len(v) {
		return 0
	}
	var dot, magU, magV float64
	for i := range u {
		dot += u[i] * v[i]
		magU += u[i] * u[i]
		magV += v[i] * v[i]
	}
	if magU == 0 || magV == 0 {
		return 0
	}
	score := dot / (math.Sqrt(magU) * math.Sqrt(magV))
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

// SimilarityMatrix computes cosine(x, y) for every x in X against every y in
// Y, row-major. Every non-empty vector in X and Y must share one common
// dimension, or DimensionMismatch is returned; empty vectors are exempt from
// the check and score 0.
func SimilarityMatrix(x, y [][]float64) ([][]float64, error) {
	dim := -1
	for _, row := range x {
		if len(row) == 0 {
			continue
		}
		if dim == -1 {
			dim = len(row)
		} else if len(row) != dim {
			return nil, apperrors.NewDimensionMismatch("x rows have inconsistent dimension")
		}
	}
	for _, row := range y {
		if len(row) == 0 {
			continue
		}
		if dim == -1 {
			dim = len(row)
		} else if len(row) != dim {
			return nil, apperrors.NewDimensionMismatch("y dimension %d does not match x dimension %d", len(row), dim)
		}
	}

	out := make([][]float64, len(x))
	for i, xi := range x {
		row := make([]float64, len(y))
		for j, yj := range y {
			row[j] = Cosine(xi, yj)
		}
		out[i] = row
	}
	return out, nil
}
