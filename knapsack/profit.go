// SPDX-License-Identifier: MIT

package knapsack

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Combine aggregates per-knapsack profits into one score. It is always called
// with at least one value.
type Combine func(values []float64) float64

// Sum adds the per-knapsack profits (the default aggregation).
func Sum(values []float64) float64 { return floats.Sum(values) }

// Mean averages the per-knapsack profits (profit per user).
func Mean(values []float64) float64 { return stat.Mean(values, nil) }

// Min returns the worst knapsack profit (max-min fairness view).
func Min(values []float64) float64 { return floats.Min(values) }

// Max returns the best knapsack profit.
func Max(values []float64) float64 { return floats.Max(values) }

// TotalProfit scores a binary assignment against the profit tensor.
//
// Per knapsack k with assignment column a_k:
//
//	profit_k = Σ_i a_k[i]·P_k[i,i] + Σ_{i<j} a_k[i]·a_k[j]·P_k[i,j]
//
// i.e. every assigned item contributes its standalone profit once and every
// unordered assigned pair contributes its pairwise increment once. The result
// is combine(profit_0, …, profit_{K-1}); a nil combine means Sum.
//
// Errors:
//   - ErrShapeMismatch / ErrNonFinite for a malformed tensor.
//   - ErrInvalidAssignment when assignment is nil, not N×K, or not binary.
//
// Complexity: O(N·K) validation + O(Σ_k m_k²) for m_k items in knapsack k.
func TotalProfit(profits Profits, assignment mat.Matrix, combine Combine) (float64, error) {
	perKnapsack, err := knapsackProfits("TotalProfit", profits, assignment)
	if err != nil {
		return 0, err
	}
	if combine == nil {
		combine = Sum
	}

	return combine(perKnapsack), nil
}

// KnapsackProfits returns profit_k for every knapsack without aggregation.
// Validation and errors are identical to TotalProfit.
func KnapsackProfits(profits Profits, assignment mat.Matrix) ([]float64, error) {
	return knapsackProfits("KnapsackProfits", profits, assignment)
}

func knapsackProfits(op string, profits Profits, assignment mat.Matrix) ([]float64, error) {
	k, n, err := validateProfits(op, profits)
	if err != nil {
		return nil, err
	}
	if err = validateAssignment(op, "assignment", assignment, n, k); err != nil {
		return nil, err
	}

	var (
		out    = make([]float64, k)
		held   = make([]int, 0, n) // items held by the current knapsack
		s      int
		i, a   int
		b      int
		p      mat.Symmetric
		profit float64
	)
	for s = 0; s < k; s++ {
		p = profits[s]
		held = held[:0]
		for i = 0; i < n; i++ {
			if assignment.At(i, s) == 1 {
				held = append(held, i)
			}
		}
		profit = 0
		for a = 0; a < len(held); a++ {
			profit += p.At(held[a], held[a]) // standalone term, once
			for b = a + 1; b < len(held); b++ {
				profit += p.At(held[a], held[b]) // unordered pair, once
			}
		}
		out[s] = profit
	}

	return out, nil
}
