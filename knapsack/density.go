// SPDX-License-Identifier: MIT

package knapsack

import "gonum.org/v1/gonum/mat"

// Densities returns the N×K marginal profit density table of a (partial)
// assignment.
//
// For item i and knapsack k:
//
//	contribution[i,k] = Σ_{j: a[j,k]=1} P_k[i,j] + (a[i,k]=0 ? P_k[i,i] : 0)
//	density[i,k]      = contribution[i,k] / weight[i]
//
// When i already sits in k the sum over assigned j holds the diagonal term, so
// no self term is added. When i is outside k, committing it would realize
// P_k[i,i] on top of its pairwise terms. Hence density[i,k]·weight[i] is
// exactly the TotalProfit gain of flipping a[i,k] to 1.
//
// Errors: ErrShapeMismatch, ErrNonFinite, ErrInvalidWeight, ErrInvalidAssignment.
//
// Complexity: O(N·K) validation + O(K·N·m) with m items per knapsack.
func Densities(profits Profits, assignment mat.Matrix, weights []float64) (*mat.Dense, error) {
	k, n, err := validateDensityInputs("Densities", profits, assignment, weights)
	if err != nil {
		return nil, err
	}
	c := contributions(profits, assignment, n, k)
	divideByWeights(c, weights, k)

	return mat.NewDense(n, k, c), nil
}

// ReducedDensities is the view Construct consumes: it keeps only the rows of
// items that are unassigned to every knapsack and returns their indices in
// ascending order. Row r of the matrix belongs to item index[r].
//
// When every item is assigned somewhere the matrix is nil and index is empty.
//
// Errors and complexity as Densities.
func ReducedDensities(profits Profits, assignment mat.Matrix, weights []float64) (*mat.Dense, []int, error) {
	k, n, err := validateDensityInputs("ReducedDensities", profits, assignment, weights)
	if err != nil {
		return nil, nil, err
	}
	index := unassignedItems(assignment, n, k)
	if len(index) == 0 {
		return nil, []int{}, nil
	}
	c := contributions(profits, assignment, n, k)
	divideByWeights(c, weights, k)

	reduced := make([]float64, 0, len(index)*k)
	for _, i := range index {
		reduced = append(reduced, c[i*k:(i+1)*k]...)
	}

	return mat.NewDense(len(index), k, reduced), index, nil
}

func validateDensityInputs(op string, profits Profits, assignment mat.Matrix, weights []float64) (int, int, error) {
	k, n, err := validateProfits(op, profits)
	if err != nil {
		return 0, 0, err
	}
	if err = validateWeights(op, weights, n); err != nil {
		return 0, 0, err
	}
	if err = validateAssignment(op, "assignment", assignment, n, k); err != nil {
		return 0, 0, err
	}

	return k, n, nil
}

// contributions computes the un-normalized contribution table in row-major
// order (offset i*k + s). Inputs are trusted.
//
// Complexity: O(K·N·m).
func contributions(profits Profits, a mat.Matrix, n, k int) []float64 {
	var (
		out  = make([]float64, n*k)
		held = make([]int, 0, n)
		s    int
		i    int
		p    mat.Symmetric
		acc  float64
	)
	for s = 0; s < k; s++ {
		p = profits[s]
		held = held[:0]
		for i = 0; i < n; i++ {
			if a.At(i, s) == 1 {
				held = append(held, i)
			}
		}
		for i = 0; i < n; i++ {
			acc = 0
			for _, j := range held {
				acc += p.At(i, j)
			}
			if a.At(i, s) == 0 {
				acc += p.At(i, i) // standalone profit realized on commit
			}
			out[i*k+s] = acc
		}
	}

	return out
}

// divideByWeights turns contributions into densities in place.
func divideByWeights(c []float64, weights []float64, k int) {
	for i, w := range weights {
		for s := 0; s < k; s++ {
			c[i*k+s] /= w
		}
	}
}

// unassignedItems lists, ascending, the items with an all-zero row.
func unassignedItems(a mat.Matrix, n, k int) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		free := true
		for s := 0; s < k; s++ {
			if a.At(i, s) != 0 {
				free = false
				break
			}
		}
		if free {
			out = append(out, i)
		}
	}

	return out
}
