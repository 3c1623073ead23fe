// SPDX-License-Identifier: MIT

// Package knapsack: domain types (profit tensor, options, step hook).
package knapsack

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// symTol is the absolute tolerance NewProfits allows between P[i,j] and P[j,i].
const symTol = 1e-12

// Profits is the K×N×N profit tensor: one symmetric N×N matrix per knapsack.
// Slice k belongs to knapsack k. The tensor is read-only to this package.
type Profits []mat.Symmetric

// NewProfits builds a Profits tensor from raw nested slices
// (raw[k][i][j] = P_k[i,j]).
//
// Contracts:
//   - len(raw) ≥ 1; every slice is square with the same order N ≥ 1.
//   - |raw[k][i][j] − raw[k][j][i]| ≤ symTol, otherwise ErrAsymmetry.
//   - every entry is finite, otherwise ErrNonFinite.
//
// The upper triangle is copied into a *mat.SymDense per knapsack.
//
// Complexity: O(K·N²).
func NewProfits(raw [][][]float64) (Profits, error) {
	if len(raw) == 0 {
		return nil, opErrorf("NewProfits", ErrShapeMismatch, "no knapsacks")
	}
	var (
		n    = len(raw[0])
		out  = make(Profits, len(raw))
		k    int
		i, j int
		v    float64
	)
	if n == 0 {
		return nil, opErrorf("NewProfits", ErrShapeMismatch, "no items")
	}
	for k = range raw {
		if len(raw[k]) != n {
			return nil, opErrorf("NewProfits", ErrShapeMismatch, "slice %d has %d rows, want %d", k, len(raw[k]), n)
		}
		for i = 0; i < n; i++ {
			if len(raw[k][i]) != n {
				return nil, opErrorf("NewProfits", ErrShapeMismatch, "slice %d row %d has %d cols, want %d", k, i, len(raw[k][i]), n)
			}
		}
		data := make([]float64, n*n)
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				v = raw[k][i][j]
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, opErrorf("NewProfits", ErrNonFinite, "P_%d(%d,%d)=%v", k, i, j, v)
				}
				if j > i && math.Abs(v-raw[k][j][i]) > symTol {
					return nil, opErrorf("NewProfits", ErrAsymmetry, "P_%d(%d,%d)=%v vs P_%d(%d,%d)=%v", k, i, j, v, k, j, i, raw[k][j][i])
				}
				data[i*n+j] = v
			}
		}
		out[k] = mat.NewSymDense(n, data)
	}

	return out, nil
}

// Knapsacks returns K, the number of profit slices.
func (p Profits) Knapsacks() int { return len(p) }

// Items returns N, the order of the first slice (0 for an empty tensor).
func (p Profits) Items() int {
	if len(p) == 0 || p[0] == nil {
		return 0
	}

	return p[0].SymmetricDim()
}

// TieBreak selects how Construct orders candidates of equal density.
type TieBreak int

const (
	// LowestIndex prefers the lower item index, then the lower knapsack index.
	LowestIndex TieBreak = iota

	// ReverseRowMajor prefers the candidate that sits later in row-major
	// (item, knapsack) order. This is the order a stable ascending sort of the
	// flattened density table yields once reversed.
	ReverseRowMajor
)

// String returns the flag-friendly name of the rule.
func (t TieBreak) String() string {
	switch t {
	case LowestIndex:
		return "lowest-index"
	case ReverseRowMajor:
		return "reverse-row-major"
	default:
		return "unknown"
	}
}

// ParseTieBreak maps a name produced by TieBreak.String back to its value.
func ParseTieBreak(name string) (TieBreak, error) {
	switch name {
	case "lowest-index", "":
		return LowestIndex, nil
	case "reverse-row-major":
		return ReverseRowMajor, nil
	default:
		return 0, opErrorf("ParseTieBreak", ErrUnsupportedTieBreak, "%q", name)
	}
}

// Step describes one committed assignment of Construct.
//
// Assignment is the live partial assignment owned by the running Construct;
// it is valid only for the duration of the callback and must not be mutated.
type Step struct {
	Round      int        // 1-based round number
	Item       int        // item index committed in this round
	Knapsack   int        // knapsack receiving the item
	Density    float64    // density of (Item, Knapsack) when it was selected
	Remaining  []float64  // remaining capacities after the commit (copy)
	Assignment mat.Matrix // read-only view of the partial assignment
}

// Options configures Construct.
//
// Fields:
//   - TieBreak: ordering of equal-density candidates (default LowestIndex).
//   - OnStep: optional hook invoked after every committed assignment.
type Options struct {
	TieBreak TieBreak
	OnStep   func(Step)
}

// DefaultOptions returns the zero-surprise configuration: LowestIndex ties,
// no hook.
func DefaultOptions() Options {
	return Options{TieBreak: LowestIndex}
}
