// SPDX-License-Identifier: MIT

package experiment

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/qmkp/baseline"
	"github.com/katalvlaran/qmkp/instance"
	"github.com/katalvlaran/qmkp/knapsack"
)

// Outcome is what one strategy produced on one instance.
type Outcome struct {
	Assignment *mat.Dense
	Rounds     int // committed greedy rounds; 0 for baselines
}

// Strategy builds an assignment for an instance. rng is a stream owned by the
// call; deterministic strategies ignore it.
type Strategy interface {
	Name() string
	Assign(in *instance.Instance, rng *rand.Rand) (Outcome, error)
}

type constructive struct{ tie knapsack.TieBreak }

func (constructive) Name() string { return StrategyConstructive }

func (c constructive) Assign(in *instance.Instance, _ *rand.Rand) (Outcome, error) {
	var rounds int
	opts := knapsack.Options{
		TieBreak: c.tie,
		OnStep:   func(knapsack.Step) { rounds++ },
	}
	a, err := knapsack.ConstructWithOptions(in.Capacities, in.Weights, in.Profits, nil, opts)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{Assignment: a, Rounds: rounds}, nil
}

type random struct{}

func (random) Name() string { return StrategyRandom }

func (random) Assign(in *instance.Instance, rng *rand.Rand) (Outcome, error) {
	a, err := baseline.Random(in.Capacities, in.Weights, rng)

	return Outcome{Assignment: a}, err
}

type roundRobin struct{}

func (roundRobin) Name() string { return StrategyRoundRobin }

func (roundRobin) Assign(in *instance.Instance, _ *rand.Rand) (Outcome, error) {
	a, err := baseline.RoundRobin(in.Capacities, in.Weights)

	return Outcome{Assignment: a}, err
}

// NewStrategy returns the strategy registered under name.
func NewStrategy(name string, tie knapsack.TieBreak) (Strategy, error) {
	switch name {
	case StrategyConstructive:
		return constructive{tie: tie}, nil
	case StrategyRandom:
		return random{}, nil
	case StrategyRoundRobin:
		return roundRobin{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, name)
	}
}
