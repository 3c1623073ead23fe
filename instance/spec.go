// SPDX-License-Identifier: MIT

package instance

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/qmkp/knapsack"
)

// Spec is the serializable form of an Instance: plain nested slices, as found
// in a config file. Weights may be omitted and then default to 1 per channel.
type Spec struct {
	Capacities []float64     `mapstructure:"capacities" yaml:"capacities" json:"capacities"`
	Weights    []float64     `mapstructure:"weights" yaml:"weights,omitempty" json:"weights,omitempty"`
	Profits    [][][]float64 `mapstructure:"profits" yaml:"profits" json:"profits"`
}

// LoadSpec decodes a YAML Spec from r. Unknown keys are rejected.
func LoadSpec(r io.Reader) (*Spec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Spec
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidSpec, err)
	}

	return &s, nil
}

// Build validates s and converts it into an Instance.
//
// Errors wrap ErrInvalidSpec together with the knapsack sentinel that
// triggered them (ErrShapeMismatch, ErrAsymmetry, …), both matchable with
// errors.Is.
func (s *Spec) Build() (*Instance, error) {
	if s == nil || len(s.Capacities) == 0 {
		return nil, fmt.Errorf("%w: no capacities", ErrInvalidSpec)
	}
	profits, err := knapsack.NewProfits(s.Profits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	k, n := profits.Knapsacks(), profits.Items()
	if k != len(s.Capacities) {
		return nil, fmt.Errorf("%w: %d capacities for %d profit matrices", ErrInvalidSpec, len(s.Capacities), k)
	}

	weights := s.Weights
	if len(weights) == 0 {
		weights = lo.Times(n, func(int) float64 { return 1 })
	}
	if len(weights) != n {
		return nil, fmt.Errorf("%w: %d weights for %d channels", ErrInvalidSpec, len(weights), n)
	}
	for i, w := range weights {
		if !finite(w) || w <= 0 {
			return nil, fmt.Errorf("%w: weights[%d]=%v", ErrInvalidSpec, i, w)
		}
	}
	for i, c := range s.Capacities {
		if !finite(c) || c < 0 {
			return nil, fmt.Errorf("%w: capacities[%d]=%v", ErrInvalidSpec, i, c)
		}
	}

	return &Instance{
		Capacities: append([]float64(nil), s.Capacities...),
		Weights:    append([]float64(nil), weights...),
		Profits:    profits,
	}, nil
}

// Spec returns the serializable form of in (deep copy).
func (in *Instance) Spec() *Spec {
	n := in.Channels()

	return &Spec{
		Capacities: append([]float64(nil), in.Capacities...),
		Weights:    append([]float64(nil), in.Weights...),
		Profits: lo.Map(in.Profits, func(p mat.Symmetric, _ int) [][]float64 {
			rows := make([][]float64, n)
			for i := range rows {
				rows[i] = make([]float64, n)
				for j := range rows[i] {
					rows[i][j] = p.At(i, j)
				}
			}

			return rows
		}),
	}
}
