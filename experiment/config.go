// SPDX-License-Identifier: MIT

package experiment

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/qmkp/instance"
	"github.com/katalvlaran/qmkp/knapsack"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("experiment: invalid config")

// Strategy names accepted in Config.Strategies.
const (
	StrategyConstructive = "constructive"
	StrategyRandom       = "random"
	StrategyRoundRobin   = "round-robin"
)

// Config is the single typed configuration of a run. Keys match the CLI flags
// and the YAML config file.
type Config struct {
	Trials     int      `mapstructure:"trials" yaml:"trials" json:"trials"`
	Seed       int64    `mapstructure:"seed" yaml:"seed" json:"seed"`
	Combine    string   `mapstructure:"combine" yaml:"combine" json:"combine"`
	TieBreak   string   `mapstructure:"tie-break" yaml:"tie-break" json:"tie_break"`
	Strategies []string `mapstructure:"strategies" yaml:"strategies" json:"strategies"`

	// Instance drives the synthetic generator; ignored when Explicit is set.
	Instance instance.Config `mapstructure:"instance" yaml:"instance" json:"instance"`

	// Explicit pins the run to one user-supplied instance and a single trial.
	Explicit *instance.Spec `mapstructure:"explicit" yaml:"explicit,omitempty" json:"explicit,omitempty"`
}

// DefaultConfig returns 100 trials of the default generator, profit per user
// (mean over knapsacks) and all three strategies.
func DefaultConfig() Config {
	return Config{
		Trials:     100,
		Combine:    "mean",
		TieBreak:   knapsack.LowestIndex.String(),
		Strategies: []string{StrategyConstructive, StrategyRandom, StrategyRoundRobin},
		Instance:   instance.DefaultConfig(),
	}
}

// Validate checks every field and reports the first problem.
func (c Config) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials=%d, want >= 1", ErrInvalidConfig, c.Trials)
	}
	if _, err := CombineByName(c.Combine); err != nil {
		return err
	}
	if _, err := knapsack.ParseTieBreak(c.TieBreak); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(c.Strategies) == 0 {
		return fmt.Errorf("%w: no strategies", ErrInvalidConfig)
	}
	if dup := lo.FindDuplicates(c.Strategies); len(dup) > 0 {
		return fmt.Errorf("%w: duplicate strategies %v", ErrInvalidConfig, dup)
	}
	known := []string{StrategyConstructive, StrategyRandom, StrategyRoundRobin}
	if unknown, _ := lo.Difference(c.Strategies, known); len(unknown) > 0 {
		return fmt.Errorf("%w: unknown strategies %v (known: %v)", ErrInvalidConfig, unknown, known)
	}
	if c.Explicit == nil {
		if err := c.Instance.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

// CombineByName maps sum|mean|min|max onto the knapsack combiners.
func CombineByName(name string) (knapsack.Combine, error) {
	switch name {
	case "sum":
		return knapsack.Sum, nil
	case "mean", "":
		return knapsack.Mean, nil
	case "min":
		return knapsack.Min, nil
	case "max":
		return knapsack.Max, nil
	default:
		return nil, fmt.Errorf("%w: unknown combine %q (want sum, mean, min or max)", ErrInvalidConfig, name)
	}
}
