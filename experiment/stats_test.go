// SPDX-License-Identifier: MIT

package experiment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/qmkp/experiment"
)

// TestDescribe_SmallSamples keeps undefined moments at zero.
func TestDescribe_SmallSamples(t *testing.T) {
	assert.Equal(t, experiment.Summary{}, experiment.Describe(nil))

	one := experiment.Describe([]float64{4})
	assert.Equal(t, experiment.Summary{Count: 1, Min: 4, Max: 4, Mean: 4}, one)

	flat := experiment.Describe([]float64{2, 2, 2, 2, 2})
	assert.Equal(t, 0.0, flat.Variance)
	assert.Equal(t, 0.0, flat.Skewness)
	assert.Equal(t, 0.0, flat.Kurtosis)

	two := experiment.Describe([]float64{10, 14})
	assert.InDelta(t, 12.0, two.Mean, 1e-12)
	assert.InDelta(t, 8.0, two.Variance, 1e-12, "unbiased: ((−2)²+2²)/(2−1)")
	assert.Equal(t, 0.0, two.Skewness)
}

// TestDescribe_Moments checks a symmetric and a right-skewed sample.
func TestDescribe_Moments(t *testing.T) {
	sym := experiment.Describe([]float64{1, 2, 3, 4, 5})
	assert.Equal(t, 5, sym.Count)
	assert.Equal(t, 1.0, sym.Min)
	assert.Equal(t, 5.0, sym.Max)
	assert.InDelta(t, 3.0, sym.Mean, 1e-12)
	assert.InDelta(t, 2.5, sym.Variance, 1e-12)
	assert.InDelta(t, 0.0, sym.Skewness, 1e-12)
	assert.Less(t, sym.Kurtosis, 0.0, "uniform-like sample is platykurtic")

	skewed := experiment.Describe([]float64{1, 1, 1, 1, 10})
	assert.Greater(t, skewed.Skewness, 0.0)
	assert.Greater(t, skewed.Kurtosis, 0.0)
}

// TestToDecibel converts positive ratios only.
func TestToDecibel(t *testing.T) {
	db, ok := experiment.ToDecibel(100)
	assert.True(t, ok)
	assert.InDelta(t, 20.0, db, 1e-12)

	db, ok = experiment.ToDecibel(1)
	assert.True(t, ok)
	assert.Equal(t, 0.0, db)

	_, ok = experiment.ToDecibel(0)
	assert.False(t, ok)
	_, ok = experiment.ToDecibel(-3)
	assert.False(t, ok)
}
