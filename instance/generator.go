// SPDX-License-Identifier: MIT

package instance

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/qmkp/knapsack"
)

// Config parameterizes the synthetic generator.
//
// Every user (knapsack) receives its own profit matrix:
//
//	P_k[i,i] ~ U[StandaloneMin, StandaloneMax)
//	P_k[i,j] = c·sqrt(P_k[i,i]·P_k[j,j]),  c ~ U[CouplingMin, CouplingMax)
//
// A negative coupling models interference between two channels held by the
// same user; a positive one models diversity gain.
type Config struct {
	Users         int     `mapstructure:"users" yaml:"users" json:"users"`
	Channels      int     `mapstructure:"channels" yaml:"channels" json:"channels"`
	Capacity      float64 `mapstructure:"capacity" yaml:"capacity" json:"capacity"`
	Weight        float64 `mapstructure:"weight" yaml:"weight" json:"weight"`
	StandaloneMin float64 `mapstructure:"standalone-min" yaml:"standalone-min" json:"standalone_min"`
	StandaloneMax float64 `mapstructure:"standalone-max" yaml:"standalone-max" json:"standalone_max"`
	CouplingMin   float64 `mapstructure:"coupling-min" yaml:"coupling-min" json:"coupling_min"`
	CouplingMax   float64 `mapstructure:"coupling-max" yaml:"coupling-max" json:"coupling_max"`
}

// DefaultConfig is the standard experiment: 3 users, 10 channels,
// two unit-weight channels per user, mostly interfering pairs.
func DefaultConfig() Config {
	return Config{
		Users:         3,
		Channels:      10,
		Capacity:      2,
		Weight:        1,
		StandaloneMin: 1,
		StandaloneMax: 10,
		CouplingMin:   -0.9,
		CouplingMax:   0.1,
	}
}

// Validate reports the first violated constraint wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Users < 1:
		return fmt.Errorf("%w: users=%d, want >= 1", ErrInvalidConfig, c.Users)
	case c.Channels < 1:
		return fmt.Errorf("%w: channels=%d, want >= 1", ErrInvalidConfig, c.Channels)
	case !finite(c.Capacity) || c.Capacity < 0:
		return fmt.Errorf("%w: capacity=%v, want finite >= 0", ErrInvalidConfig, c.Capacity)
	case !finite(c.Weight) || c.Weight <= 0:
		return fmt.Errorf("%w: weight=%v, want finite > 0", ErrInvalidConfig, c.Weight)
	case !finite(c.StandaloneMin) || !finite(c.StandaloneMax) || c.StandaloneMin < 0 || c.StandaloneMin > c.StandaloneMax:
		return fmt.Errorf("%w: standalone range [%v, %v]", ErrInvalidConfig, c.StandaloneMin, c.StandaloneMax)
	case !finite(c.CouplingMin) || !finite(c.CouplingMax) || c.CouplingMin > c.CouplingMax:
		return fmt.Errorf("%w: coupling range [%v, %v]", ErrInvalidConfig, c.CouplingMin, c.CouplingMax)
	}

	return nil
}

// Instance is one QMKP-HP problem: K users, N channels.
type Instance struct {
	Capacities []float64
	Weights    []float64
	Profits    knapsack.Profits
}

// Users returns K.
func (in *Instance) Users() int { return len(in.Capacities) }

// Channels returns N.
func (in *Instance) Channels() int { return len(in.Weights) }

// Generate draws an instance from cfg using rng (nil ⇒ DefaultSeed stream).
//
// Draw order is fixed (per user: N diagonals, then the upper triangle in
// row-major order), so a given stream always yields the same instance.
//
// Complexity: O(K·N²).
func Generate(cfg Config, rng *rand.Rand) (*Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRNG(0)
	}

	var (
		k, n    = cfg.Users, cfg.Channels
		profits = make(knapsack.Profits, k)
		diag    = make([]float64, n)
		s, i, j int
		sym     *mat.SymDense
	)
	for s = 0; s < k; s++ {
		sym = mat.NewSymDense(n, nil)
		for i = 0; i < n; i++ {
			diag[i] = uniform(rng, cfg.StandaloneMin, cfg.StandaloneMax)
			sym.SetSym(i, i, diag[i])
		}
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				c := uniform(rng, cfg.CouplingMin, cfg.CouplingMax)
				sym.SetSym(i, j, c*math.Sqrt(diag[i]*diag[j]))
			}
		}
		profits[s] = sym
	}

	return &Instance{
		Capacities: lo.Times(k, func(int) float64 { return cfg.Capacity }),
		Weights:    lo.Times(n, func(int) float64 { return cfg.Weight }),
		Profits:    profits,
	}, nil
}

func uniform(rng *rand.Rand, from, to float64) float64 {
	return from + rng.Float64()*(to-from)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
