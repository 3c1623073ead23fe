// SPDX-License-Identifier: MIT

package knapsack_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/qmkp/knapsack"
)

// TestDensities_HandComputed checks both branches of the contribution rule.
func TestDensities_HandComputed(t *testing.T) {
	p := mustProfits(t, [][][]float64{{
		{5, 1, 2},
		{1, 3, -4},
		{2, -4, 6},
	}})
	a := assignmentOf([][]float64{{1}, {0}, {0}})
	w := []float64{1, 2, 4}

	d, err := knapsack.Densities(p, a, w)
	require.NoError(t, err)
	r, c := d.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 1, c)

	assert.InDelta(t, 5.0, d.At(0, 0), epsTiny, "assigned item: held sum only, self term already inside")
	assert.InDelta(t, (1.0+3.0)/2, d.At(1, 0), epsTiny, "pair with item 0 plus own diagonal")
	assert.InDelta(t, (2.0+6.0)/4, d.At(2, 0), epsTiny, "pair with item 0 plus own diagonal")
}

// TestDensities_MarginalGain verifies density·weight equals the TotalProfit
// gain of flipping a[i,k] from 0 to 1.
func TestDensities_MarginalGain(t *testing.T) {
	rng := rand.New(rand.NewSource(seedDet))
	raw := randomRaw(rng, 2, 5, -3, 5)
	p := mustProfits(t, raw)
	w := []float64{1, 0.5, 2, 1.5, 1}
	a := assignmentOf([][]float64{{1, 0}, {0, 0}, {0, 1}, {1, 1}, {0, 0}})

	d, err := knapsack.Densities(p, a, w)
	require.NoError(t, err)
	base, err := knapsack.TotalProfit(p, a, nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		for s := 0; s < 2; s++ {
			if a.At(i, s) == 1 {
				continue
			}
			flipped := mat.DenseCopyOf(a)
			flipped.Set(i, s, 1)
			next, err := knapsack.TotalProfit(p, flipped, nil)
			require.NoError(t, err)
			assert.InDeltaf(t, next-base, d.At(i, s)*w[i], epsTiny, "item %d knapsack %d", i, s)
		}
	}
}

// TestReducedDensities_DropsAssignedRows keeps only items free everywhere.
func TestReducedDensities_DropsAssignedRows(t *testing.T) {
	p := mustProfits(t, [][][]float64{
		{{1, 2, 3}, {2, 4, 5}, {3, 5, 6}},
		{{7, 0, 1}, {0, 8, 0}, {1, 0, 9}},
	})
	a := assignmentOf([][]float64{{0, 0}, {0, 0}, {0, 1}})
	w := ones(3)

	full, err := knapsack.Densities(p, a, w)
	require.NoError(t, err)
	reduced, index, err := knapsack.ReducedDensities(p, a, w)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, index)
	r, c := reduced.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	for row, i := range index {
		for s := 0; s < 2; s++ {
			assert.Equal(t, full.At(i, s), reduced.At(row, s), "row %d mirrors item %d", row, i)
		}
	}
	assert.Equal(t, 7.0+1.0, reduced.At(0, 1), "item 0 in knapsack 1 pairs with held item 2")
}

// TestReducedDensities_AllAssigned returns an empty index and no matrix.
func TestReducedDensities_AllAssigned(t *testing.T) {
	p := mustProfits(t, [][][]float64{{{1, 0}, {0, 1}}})
	d, index, err := knapsack.ReducedDensities(p, assignmentOf([][]float64{{1}, {1}}), ones(2))
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Empty(t, index)
	assert.NotNil(t, index)
}

// TestDensities_Errors covers each rejected input class.
func TestDensities_Errors(t *testing.T) {
	p := mustProfits(t, [][][]float64{{{1, 0}, {0, 1}}})
	a := assignmentOf([][]float64{{0}, {0}})

	_, err := knapsack.Densities(p, a, []float64{1})
	assert.ErrorIs(t, err, knapsack.ErrShapeMismatch, "short weights")

	_, err = knapsack.Densities(p, a, []float64{1, 0})
	assert.ErrorIs(t, err, knapsack.ErrInvalidWeight, "zero weight")

	_, err = knapsack.Densities(p, assignmentOf([][]float64{{0}, {0.3}}), ones(2))
	assert.ErrorIs(t, err, knapsack.ErrInvalidAssignment)

	_, _, err = knapsack.ReducedDensities(p, assignmentOf([][]float64{{0, 0}, {0, 0}}), ones(2))
	assert.ErrorIs(t, err, knapsack.ErrInvalidAssignment)
}
