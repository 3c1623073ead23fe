// SPDX-License-Identifier: MIT

// Package knapsack_test shares small fixtures and reference implementations
// across the *_test.go files of this package.
package knapsack_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/qmkp/knapsack"
)

const (
	// epsTiny bounds rounding noise in sums of a handful of terms.
	epsTiny = 1e-9

	// seedDet is the fixed seed for every randomized fixture.
	seedDet = int64(42)
)

// mustProfits builds a tensor from nested slices or fails the test.
func mustProfits(t testing.TB, raw [][][]float64) knapsack.Profits {
	t.Helper()
	p, err := knapsack.NewProfits(raw)
	require.NoError(t, err, "fixture tensor must be valid")

	return p
}

// assignmentOf builds an N×K matrix from rows.
func assignmentOf(rows [][]float64) *mat.Dense {
	n, k := len(rows), len(rows[0])
	data := make([]float64, 0, n*k)
	for _, r := range rows {
		data = append(data, r...)
	}

	return mat.NewDense(n, k, data)
}

// randomRaw draws a K×N×N symmetric tensor with entries in [lo, hi).
func randomRaw(rng *rand.Rand, k, n int, lo, hi float64) [][][]float64 {
	raw := make([][][]float64, k)
	var s, i, j int
	for s = 0; s < k; s++ {
		raw[s] = make([][]float64, n)
		for i = 0; i < n; i++ {
			raw[s][i] = make([]float64, n)
		}
		for i = 0; i < n; i++ {
			for j = i; j < n; j++ {
				v := lo + rng.Float64()*(hi-lo)
				raw[s][i][j] = v
				raw[s][j][i] = v
			}
		}
	}

	return raw
}

// bruteProfit scores a from nested slices with explicit loops, independent of
// the package's implementation.
func bruteProfit(raw [][][]float64, a [][]float64) float64 {
	var total float64
	for s := range raw {
		for i := range a {
			if a[i][s] != 1 {
				continue
			}
			total += raw[s][i][i]
			for j := i + 1; j < len(a); j++ {
				if a[j][s] == 1 {
					total += raw[s][i][j]
				}
			}
		}
	}

	return total
}

// allAssignments enumerates every binary n×k matrix as nested slices.
func allAssignments(n, k int) [][][]float64 {
	cells := n * k
	out := make([][][]float64, 0, 1<<cells)
	for mask := 0; mask < 1<<cells; mask++ {
		a := make([][]float64, n)
		for i := 0; i < n; i++ {
			a[i] = make([]float64, k)
			for s := 0; s < k; s++ {
				if mask&(1<<(i*k+s)) != 0 {
					a[i][s] = 1
				}
			}
		}
		out = append(out, a)
	}

	return out
}

// loads returns Σ_i weight[i]·a[i,k] per knapsack.
func loads(a mat.Matrix, weights []float64) []float64 {
	n, k := a.Dims()
	out := make([]float64, k)
	for s := 0; s < k; s++ {
		for i := 0; i < n; i++ {
			out[s] += weights[i] * a.At(i, s)
		}
	}

	return out
}

// requireFeasible asserts the per-knapsack capacity invariant.
func requireFeasible(t *testing.T, a mat.Matrix, weights, capacities []float64) {
	t.Helper()
	for s, l := range loads(a, weights) {
		require.LessOrEqualf(t, l, capacities[s]+epsTiny, "knapsack %d overloaded", s)
	}
}

// ones returns a slice of n ones.
func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
