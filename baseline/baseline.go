// SPDX-License-Identifier: MIT

// Package baseline provides reference assignments the greedy engine is
// compared against. Every baseline returns a capacity-feasible N×K binary
// matrix in which each item is placed at most once, so it can be scored with
// knapsack.TotalProfit on equal footing with knapsack.Construct.
package baseline

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/qmkp/instance"
)

// ErrInvalidInput is returned for empty or non-finite capacities/weights,
// a negative capacity or a non-positive weight.
var ErrInvalidInput = errors.New("baseline: invalid input")

// Random shuffles the items with rng and fills knapsacks in ascending order:
// knapsack 0 takes shuffled items while they fit, then knapsack 1 continues
// with the items left over, and so on. Items that fit nowhere stay unassigned.
//
// With unit weights and capacity c this draws K·c distinct items uniformly,
// c per knapsack. A nil rng uses the instance.DefaultSeed stream.
//
// Complexity: O(N·K).
func Random(capacities, weights []float64, rng *rand.Rand) (*mat.Dense, error) {
	if err := validate(capacities, weights); err != nil {
		return nil, err
	}
	var (
		k, n      = len(capacities), len(weights)
		out       = mat.NewDense(n, k, nil)
		queue     = instance.Perm(n, rng)
		remaining float64
		rest      []int
	)
	for s := 0; s < k && len(queue) > 0; s++ {
		remaining = capacities[s]
		rest = queue[:0]
		for _, i := range queue {
			if weights[i] <= remaining {
				out.Set(i, s, 1)
				remaining -= weights[i]
				continue
			}
			rest = append(rest, i)
		}
		queue = rest
	}

	return out, nil
}

// RoundRobin deals items in ascending index order to a cyclic knapsack
// cursor. Each item goes to the first knapsack at or after the cursor that
// still fits it, and the cursor then moves past that knapsack. An item that
// fits nowhere is skipped.
//
// Complexity: O(N·K).
func RoundRobin(capacities, weights []float64) (*mat.Dense, error) {
	if err := validate(capacities, weights); err != nil {
		return nil, err
	}
	var (
		k, n      = len(capacities), len(weights)
		out       = mat.NewDense(n, k, nil)
		remaining = append([]float64(nil), capacities...)
		cursor    int
		step, s   int
	)
	for i := 0; i < n; i++ {
		for step = 0; step < k; step++ {
			s = (cursor + step) % k
			if weights[i] <= remaining[s] {
				out.Set(i, s, 1)
				remaining[s] -= weights[i]
				cursor = (s + 1) % k
				break
			}
		}
	}

	return out, nil
}

func validate(capacities, weights []float64) error {
	if len(capacities) == 0 || len(weights) == 0 {
		return fmt.Errorf("%w: %d capacities, %d weights", ErrInvalidInput, len(capacities), len(weights))
	}
	if i, bad := badIndex(capacities, func(v float64) bool { return v < 0 }); bad {
		return fmt.Errorf("%w: capacities[%d]=%v", ErrInvalidInput, i, capacities[i])
	}
	if i, bad := badIndex(weights, func(v float64) bool { return v <= 0 }); bad {
		return fmt.Errorf("%w: weights[%d]=%v", ErrInvalidInput, i, weights[i])
	}

	return nil
}

// badIndex returns the first index whose value is non-finite or out of range.
func badIndex(values []float64, outOfRange func(float64) bool) (int, bool) {
	_, i, found := lo.FindIndexOf(values, func(v float64) bool {
		return math.IsNaN(v) || math.IsInf(v, 0) || outOfRange(v)
	})

	return i, found
}
