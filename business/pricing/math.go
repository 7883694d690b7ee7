// business/pricing/math.go
package pricing

import (
	"fmt"
	"math"
)

// Dense helpers for the normal-equations solve. Feature dimensions stay in
// the low tens, so Gauss-Jordan is plenty.

// y = A * x
func matVecMul(A [][]float64, x []float64) []float64 {
	y := make([]float64, len(A))
	for i := range A {
		sum := 0.0
		for j := range x {
			sum += A[i][j] * x[j]
		}
		y[i] = sum
	}
	return y
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// A := A + x x^T
func addOuter(A [][]float64, x []float64) {
	for i := range x {
		for j := range x {
			A[i][j] += x[i] * x[j]
		}
	}
}

// b := b + r x
func addScaled(b []float64, x []float64, r float64) {
	for i := range x {
		b[i] += r * x[i]
	}
}

// identityScaled returns v * I of size n.
func identityScaled(n int, v float64) [][]float64 {
	A := make([][]float64, n)
	for i := range A {
		A[i] = make([]float64, n)
		A[i][i] = v
	}
	return A
}

// Invert a square matrix using Gauss-Jordan with partial pivoting.
func invertMatrix(A [][]float64) ([][]float64, error) {
	n := len(A)

	// Build augmented [A | I]
	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], A[i])
		aug[i][n+i] = 1.0
	}

	for col := 0; col < n; col++ {
		// pick the largest pivot in this column
		pivotRow := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivotRow][col]) {
				pivotRow = r
			}
		}
		if math.Abs(aug[pivotRow][col]) < 1e-12 {
			return nil, fmt.Errorf("matrix is singular")
		}
		aug[col], aug[pivotRow] = aug[pivotRow], aug[col]

		// Normalize pivot row
		pivot := aug[col][col]
		for j := 0; j < 2*n; j++ {
			aug[col][j] /= pivot
		}

		// Eliminate other rows
		for i := 0; i < n; i++ {
			if i == col {
				continue
			}
			factor := aug[i][col]
			for j := 0; j < 2*n; j++ {
				aug[i][j] -= factor * aug[col][j]
			}
		}
	}

	// Extract inverse
	inv := make([][]float64, n)
	for i := range inv {
		inv[i] = make([]float64, n)
		copy(inv[i], aug[i][n:])
	}
	return inv, nil
}
