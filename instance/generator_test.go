// SPDX-License-Identifier: MIT

package instance_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qmkp/instance"
	"github.com/katalvlaran/qmkp/knapsack"
)

// TestGenerate_Shape checks dimensions, defaults and value ranges.
func TestGenerate_Shape(t *testing.T) {
	cfg := instance.DefaultConfig()
	in, err := instance.Generate(cfg, instance.NewRNG(3))
	require.NoError(t, err)

	assert.Equal(t, 3, in.Users())
	assert.Equal(t, 10, in.Channels())
	assert.Equal(t, []float64{2, 2, 2}, in.Capacities)
	require.Len(t, in.Profits, 3)

	for s, p := range in.Profits {
		require.Equal(t, 10, p.SymmetricDim())
		for i := 0; i < 10; i++ {
			d := p.At(i, i)
			assert.GreaterOrEqualf(t, d, cfg.StandaloneMin, "P_%d(%d,%d)", s, i, i)
			assert.Lessf(t, d, cfg.StandaloneMax, "P_%d(%d,%d)", s, i, i)
			for j := i + 1; j < 10; j++ {
				bound := math.Sqrt(p.At(i, i) * p.At(j, j))
				assert.GreaterOrEqual(t, p.At(i, j), cfg.CouplingMin*bound-1e-12)
				assert.Less(t, p.At(i, j), cfg.CouplingMax*bound+1e-12)
				assert.Equal(t, p.At(i, j), p.At(j, i))
			}
		}
	}
}

// TestGenerate_Deterministic reproduces an instance from its stream.
func TestGenerate_Deterministic(t *testing.T) {
	cfg := instance.DefaultConfig()
	a, err := instance.Generate(cfg, instance.DeriveRNG(9, instance.StreamTrial))
	require.NoError(t, err)
	b, err := instance.Generate(cfg, instance.DeriveRNG(9, instance.StreamTrial))
	require.NoError(t, err)
	c, err := instance.Generate(cfg, instance.DeriveRNG(9, instance.StreamTrial+1))
	require.NoError(t, err)

	assert.Equal(t, a.Spec(), b.Spec())
	assert.NotEqual(t, a.Spec().Profits, c.Spec().Profits)
}

// TestGenerate_FeedsConstruct runs the engine on a generated instance.
func TestGenerate_FeedsConstruct(t *testing.T) {
	in, err := instance.Generate(instance.DefaultConfig(), nil)
	require.NoError(t, err)

	a, err := knapsack.Construct(in.Capacities, in.Weights, in.Profits, nil)
	require.NoError(t, err)
	r, c := a.Dims()
	assert.Equal(t, 10, r)
	assert.Equal(t, 3, c)
}

// TestConfig_Validate rejects each malformed field.
func TestConfig_Validate(t *testing.T) {
	mutate := map[string]func(*instance.Config){
		"users":      func(c *instance.Config) { c.Users = 0 },
		"channels":   func(c *instance.Config) { c.Channels = -1 },
		"capacity":   func(c *instance.Config) { c.Capacity = -2 },
		"weight":     func(c *instance.Config) { c.Weight = 0 },
		"standalone": func(c *instance.Config) { c.StandaloneMin, c.StandaloneMax = 5, 1 },
		"coupling":   func(c *instance.Config) { c.CouplingMax = math.NaN() },
	}
	for name, m := range mutate {
		t.Run(name, func(t *testing.T) {
			cfg := instance.DefaultConfig()
			m(&cfg)
			assert.ErrorIs(t, cfg.Validate(), instance.ErrInvalidConfig)
			_, err := instance.Generate(cfg, nil)
			assert.ErrorIs(t, err, instance.ErrInvalidConfig)
		})
	}
	assert.NoError(t, instance.DefaultConfig().Validate())
}

// TestSpec_RoundTrip builds, exports and rebuilds an explicit instance.
func TestSpec_RoundTrip(t *testing.T) {
	const doc = `
capacities: [1, 1]
profits:
  - [[4, 0], [0, 1]]
  - [[1, 0], [0, 4]]
`
	s, err := instance.LoadSpec(strings.NewReader(doc))
	require.NoError(t, err)
	in, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, in.Weights, "omitted weights default to 1")
	assert.Equal(t, 4.0, in.Profits[1].At(1, 1))

	again, err := in.Spec().Build()
	require.NoError(t, err)
	assert.Equal(t, in.Spec(), again.Spec())
}

// TestSpec_Errors covers inconsistent explicit instances.
func TestSpec_Errors(t *testing.T) {
	_, err := instance.LoadSpec(strings.NewReader("capacity: [1]\n"))
	assert.ErrorIs(t, err, instance.ErrInvalidSpec, "unknown key")

	_, err = (&instance.Spec{}).Build()
	assert.ErrorIs(t, err, instance.ErrInvalidSpec)

	_, err = (&instance.Spec{
		Capacities: []float64{1},
		Profits:    [][][]float64{{{1, 2}, {3, 1}}},
	}).Build()
	assert.ErrorIs(t, err, instance.ErrInvalidSpec)
	assert.ErrorIs(t, err, knapsack.ErrAsymmetry, "engine sentinel stays visible")

	_, err = (&instance.Spec{
		Capacities: []float64{1, 1},
		Profits:    [][][]float64{{{1}}},
	}).Build()
	assert.ErrorIs(t, err, instance.ErrInvalidSpec, "capacity count")

	_, err = (&instance.Spec{
		Capacities: []float64{1},
		Weights:    []float64{1, 1},
		Profits:    [][][]float64{{{1}}},
	}).Build()
	assert.ErrorIs(t, err, instance.ErrInvalidSpec, "weight count")

	_, err = (&instance.Spec{
		Capacities: []float64{-1},
		Profits:    [][][]float64{{{1}}},
	}).Build()
	assert.ErrorIs(t, err, instance.ErrInvalidSpec, "negative capacity")
}
