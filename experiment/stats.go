// SPDX-License-Identifier: MIT

package experiment

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a sample the way a statistics "describe" call does.
//
// Variance is the unbiased sample variance; Skewness and Kurtosis (excess)
// are gonum's sample estimators. Moments that the sample is too small or too
// flat to define are reported as 0.
type Summary struct {
	Count    int     `yaml:"count" json:"count"`
	Min      float64 `yaml:"min" json:"min"`
	Max      float64 `yaml:"max" json:"max"`
	Mean     float64 `yaml:"mean" json:"mean"`
	Variance float64 `yaml:"variance" json:"variance"`
	Skewness float64 `yaml:"skewness" json:"skewness"`
	Kurtosis float64 `yaml:"kurtosis" json:"kurtosis"`
}

// Describe summarizes values. An empty sample yields the zero Summary.
func Describe(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}
	s := Summary{
		Count: n,
		Min:   floats.Min(values),
		Max:   floats.Max(values),
		Mean:  stat.Mean(values, nil),
	}
	if n < 2 {
		return s
	}
	s.Variance = stat.Variance(values, nil)
	if s.Variance == 0 {
		return s
	}
	if n >= 3 {
		s.Skewness = finiteOrZero(stat.Skew(values, nil))
	}
	if n >= 4 {
		s.Kurtosis = finiteOrZero(stat.ExKurtosis(values, nil))
	}

	return s
}

// ToDecibel converts a linear power ratio to dB. ok is false for v <= 0.
func ToDecibel(v float64) (db float64, ok bool) {
	if v <= 0 || math.IsNaN(v) {
		return 0, false
	}

	return 10 * math.Log10(v), true
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
