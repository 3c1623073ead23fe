// SPDX-License-Identifier: MIT

package experiment

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// Format selects how a Report is rendered.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value; "" selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want text, yaml or json)", ErrInvalidConfig, s)
	}
}

// Report is the outcome of Runner.Run.
type Report struct {
	RunID    string `yaml:"run_id" json:"run_id"`
	Users    int    `yaml:"users" json:"users"`
	Channels int    `yaml:"channels" json:"channels"`
	Explicit bool   `yaml:"explicit" json:"explicit"`
	Trials   int    `yaml:"trials" json:"trials"`
	Seed     int64  `yaml:"seed" json:"seed"`
	Combine  string `yaml:"combine" json:"combine"`
	TieBreak string `yaml:"tie_break" json:"tie_break"`

	// Generation summarizes instance construction time in seconds.
	Generation Summary `yaml:"generation_seconds" json:"generation_seconds"`

	Strategies []StrategyReport `yaml:"strategies" json:"strategies"`
	Records    []TrialRecord    `yaml:"records,omitempty" json:"records,omitempty"`
}

// StrategyReport aggregates one strategy over all trials.
type StrategyReport struct {
	Name    string  `yaml:"name" json:"name"`
	Profit  Summary `yaml:"profit" json:"profit"`
	Seconds Summary `yaml:"seconds" json:"seconds"`

	// ProfitDB is 10·log10 of the mean profit; nil when the mean is <= 0.
	ProfitDB *float64 `yaml:"profit_db" json:"profit_db"`

	// Rounds is only reported for the constructive strategy.
	Rounds *Summary `yaml:"rounds,omitempty" json:"rounds,omitempty"`
}

// TrialRecord keeps the per-strategy profit of one trial.
type TrialRecord struct {
	Trial   int                `yaml:"trial" json:"trial"`
	Profits map[string]float64 `yaml:"profits" json:"profits"`
}

// Render writes r to w in the requested format.
func (r *Report) Render(w io.Writer, f Format) error {
	switch f {
	case FormatText, "":
		return r.renderText(w)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}

		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, f)
	}
}

func (r *Report) renderText(w io.Writer) error {
	source := "synthetic"
	if r.Explicit {
		source = "explicit"
	}
	header := fmt.Sprintf(
		"run       %s\ninstance  %d users x %d channels (%s)\ntrials    %d (seed %d, combine %s, tie-break %s)\ngenerate  mean %s\n\n",
		r.RunID, r.Users, r.Channels, source,
		r.Trials, r.Seed, r.Combine, r.TieBreak,
		seconds(r.Generation.Mean),
	)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "strategy\tprofit mean\tprofit dB\tmin\tmax\tvariance\tskewness\tkurtosis\trounds\ttime mean")
	for _, s := range r.Strategies {
		db := "n/a"
		if s.ProfitDB != nil {
			db = strconv.FormatFloat(*s.ProfitDB, 'f', 2, 64)
		}
		rounds := "-"
		if s.Rounds != nil {
			rounds = strconv.FormatFloat(s.Rounds.Mean, 'f', 1, 64)
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%s\t%s\n",
			s.Name, s.Profit.Mean, db, s.Profit.Min, s.Profit.Max,
			s.Profit.Variance, s.Profit.Skewness, s.Profit.Kurtosis,
			rounds, seconds(s.Seconds.Mean))
	}

	return tw.Flush()
}

// seconds formats a duration given in seconds, rounded to the microsecond.
func seconds(v float64) string {
	return time.Duration(v * float64(time.Second)).Round(time.Microsecond).String()
}
