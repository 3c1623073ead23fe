// SPDX-License-Identifier: MIT

package knapsack

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// feasTol absorbs floating-point noise when checking a starting load against
// its capacity.
const feasTol = 1e-9

// Construct runs the constructive procedure with DefaultOptions.
// See ConstructWithOptions for the full contract.
func Construct(capacities, weights []float64, profits Profits, start mat.Matrix) (*mat.Dense, error) {
	return ConstructWithOptions(capacities, weights, profits, start, DefaultOptions())
}

// ConstructWithOptions builds a capacity-feasible assignment greedily.
//
// Algorithm:
//  1. Start from start (or all zeros when nil). remaining[k] = capacity[k] −
//     Σ_i weight[i]·start[i,k]. Candidates are items unassigned to every
//     knapsack.
//  2. Stop when no candidate is left or when every candidate's weight exceeds
//     max_k remaining[k].
//  3. Order all (candidate, knapsack) pairs by descending density, ties by
//     opts.TieBreak, and commit the first pair whose weight fits
//     remaining[k]. Exactly one pair is committed per round.
//  4. Update densities and repeat from 2.
//
// The first fitting pair of that order is the maximum of the order restricted
// to fitting pairs, so each round is a single O(N·K) scan instead of a sort.
// Densities are updated incrementally: committing (i,k) adds P_k[x,i] to the
// contribution of every other item x in column k, while the contribution of i
// itself is unchanged (its self term moves from "pending" to "held"). The
// values equal a fresh Densities call at every round boundary.
//
// Termination: every round assigns one previously unassigned item, so there
// are at most N rounds.
//
// Errors:
//   - ErrShapeMismatch, ErrNonFinite, ErrInvalidWeight, ErrInvalidCapacity.
//   - ErrInvalidAssignment when start is not binary or not N×K.
//   - ErrInfeasibleStart when start already overloads a knapsack.
//   - ErrUnsupportedTieBreak for an unknown opts.TieBreak.
//
// No input is mutated; the returned matrix is freshly allocated.
//
// Complexity: O(N²·K) worst case (N rounds × O(N·K) scan + O(N) update).
func ConstructWithOptions(capacities, weights []float64, profits Profits, start mat.Matrix, opts Options) (*mat.Dense, error) {
	const op = "Construct"

	// Stage 1 - validation.
	k, n, err := validateProfits(op, profits)
	if err != nil {
		return nil, err
	}
	if err = validateCapacities(op, capacities, k); err != nil {
		return nil, err
	}
	if err = validateWeights(op, weights, n); err != nil {
		return nil, err
	}
	if start != nil {
		if err = validateAssignment(op, "start", start, n, k); err != nil {
			return nil, err
		}
	}
	if opts.TieBreak != LowestIndex && opts.TieBreak != ReverseRowMajor {
		return nil, opErrorf(op, ErrUnsupportedTieBreak, "%d", int(opts.TieBreak))
	}

	// Stage 2 - initialization.
	solution := mat.NewDense(n, k, nil)
	if start != nil {
		solution.Copy(start)
	}
	remaining := make([]float64, k)
	var (
		i, s int
	)
	for s = 0; s < k; s++ {
		remaining[s] = capacities[s]
		for i = 0; i < n; i++ {
			if solution.At(i, s) == 1 {
				remaining[s] -= weights[i]
			}
		}
		if remaining[s] < -feasTol {
			return nil, opErrorf(op, ErrInfeasibleStart, "knapsack %d load exceeds capacity %v by %v", s, capacities[s], -remaining[s])
		}
	}
	contrib := contributions(profits, solution, n, k)
	candidate := make([]bool, n)
	for _, i = range unassignedItems(solution, n, k) {
		candidate[i] = true
	}

	// Stage 3 - greedy rounds.
	var (
		round    int
		bestItem int
		bestSack int
		bestDens float64
		d        float64
	)
	for {
		if !canFitAny(candidate, weights, remaining) {
			break
		}

		bestItem, bestSack = -1, -1
		for i = 0; i < n; i++ {
			if !candidate[i] {
				continue
			}
			for s = 0; s < k; s++ {
				if weights[i] > remaining[s] {
					continue
				}
				d = contrib[i*k+s] / weights[i]
				if bestItem < 0 || ranksBefore(d, bestDens, opts.TieBreak) {
					bestItem, bestSack, bestDens = i, s, d
				}
			}
		}
		// canFitAny guarantees a fitting pair exists.

		solution.Set(bestItem, bestSack, 1)
		remaining[bestSack] -= weights[bestItem]
		candidate[bestItem] = false
		updateContributions(contrib, profits[bestSack], bestItem, bestSack, n, k)
		round++

		if opts.OnStep != nil {
			opts.OnStep(Step{
				Round:      round,
				Item:       bestItem,
				Knapsack:   bestSack,
				Density:    bestDens,
				Remaining:  append([]float64(nil), remaining...),
				Assignment: solution,
			})
		}
	}

	return solution, nil
}

// canFitAny reports whether some candidate weighs at most max(remaining).
func canFitAny(candidate []bool, weights, remaining []float64) bool {
	maxRemaining := math.Inf(-1)
	for _, r := range remaining {
		if r > maxRemaining {
			maxRemaining = r
		}
	}
	for i, ok := range candidate {
		if ok && weights[i] <= maxRemaining {
			return true
		}
	}

	return false
}

// ranksBefore reports whether a candidate with density d, met later in the
// ascending row-major scan, precedes the current best with density best.
//
// LowestIndex keeps the earlier candidate on ties; ReverseRowMajor takes the
// later one.
func ranksBefore(d, best float64, tie TieBreak) bool {
	if d != best {
		return d > best
	}

	return tie == ReverseRowMajor
}

// updateContributions applies the commit of (item, sack) to column sack.
func updateContributions(contrib []float64, p mat.Symmetric, item, sack, n, k int) {
	for x := 0; x < n; x++ {
		if x == item {
			continue
		}
		contrib[x*k+sack] += p.At(x, item)
	}
}
