// SPDX-License-Identifier: MIT

// Package knapsack - boundary validation shared by TotalProfit, Densities and
// Construct.
//
// Design principles:
//   - Validate once at the public boundary; private kernels trust their input.
//   - Deterministic scan orders so the first reported violation is stable.
//   - Sentinel errors only (errors.go), wrapped with op name and coordinates.
package knapsack

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// validateProfits checks that p is a non-empty tensor of equal-order, finite
// symmetric slices. It returns (K, N).
//
// Complexity: O(K·N²).
func validateProfits(op string, p Profits) (int, int, error) {
	if len(p) == 0 {
		return 0, 0, opErrorf(op, ErrShapeMismatch, "profits has no knapsacks")
	}
	if p[0] == nil {
		return 0, 0, opErrorf(op, ErrShapeMismatch, "profits[0] is nil")
	}
	var (
		k    = len(p)
		n    = p[0].SymmetricDim()
		s    int
		i, j int
		v    float64
	)
	if n == 0 {
		return 0, 0, opErrorf(op, ErrShapeMismatch, "profits has no items")
	}
	for s = 0; s < k; s++ {
		if p[s] == nil {
			return 0, 0, opErrorf(op, ErrShapeMismatch, "profits[%d] is nil", s)
		}
		if p[s].SymmetricDim() != n {
			return 0, 0, opErrorf(op, ErrShapeMismatch, "profits[%d] is %d×%d, want %d×%d", s, p[s].SymmetricDim(), p[s].SymmetricDim(), n, n)
		}
		// Upper triangle covers every distinct entry of a symmetric matrix.
		for i = 0; i < n; i++ {
			for j = i; j < n; j++ {
				v = p[s].At(i, j)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return 0, 0, opErrorf(op, ErrNonFinite, "P_%d(%d,%d)=%v", s, i, j, v)
				}
			}
		}
	}

	return k, n, nil
}

// validateAssignment checks that a is a non-nil n×k matrix of exact 0/1 values.
//
// Complexity: O(N·K).
func validateAssignment(op, name string, a mat.Matrix, n, k int) error {
	if a == nil {
		return opErrorf(op, ErrInvalidAssignment, "%s is nil", name)
	}
	r, c := a.Dims()
	if r != n || c != k {
		return opErrorf(op, ErrInvalidAssignment, "%s is %d×%d, want %d×%d", name, r, c, n, k)
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < k; j++ {
			v = a.At(i, j)
			if v != 0 && v != 1 {
				return opErrorf(op, ErrInvalidAssignment, "%s(%d,%d)=%v is not binary", name, i, j, v)
			}
		}
	}

	return nil
}

// validateWeights checks len(w)==n and every weight finite and > 0.
//
// Complexity: O(N).
func validateWeights(op string, w []float64, n int) error {
	if len(w) != n {
		return opErrorf(op, ErrShapeMismatch, "len(weights)=%d, want %d", len(w), n)
	}
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return opErrorf(op, ErrInvalidWeight, "weights[%d]=%v", i, v)
		}
	}

	return nil
}

// validateCapacities checks len(c)==k and every capacity finite and >= 0.
//
// Complexity: O(K).
func validateCapacities(op string, c []float64, k int) error {
	if len(c) != k {
		return opErrorf(op, ErrShapeMismatch, "len(capacities)=%d, want %d", len(c), k)
	}
	for i, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return opErrorf(op, ErrInvalidCapacity, "capacities[%d]=%v", i, v)
		}
	}

	return nil
}
