// SPDX-License-Identifier: MIT

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/qmkp/experiment"
	"github.com/katalvlaran/qmkp/instance"
	"github.com/katalvlaran/qmkp/knapsack"
)

type solveSettings struct {
	Combine  string `mapstructure:"combine"`
	TieBreak string `mapstructure:"tie-break"`
	Format   string `mapstructure:"format"`
}

// solution is the rendered result of `qmkp solve`.
type solution struct {
	Users    int    `yaml:"users" json:"users"`
	Channels int    `yaml:"channels" json:"channels"`
	TieBreak string `yaml:"tie_break" json:"tie_break"`
	Rounds   int    `yaml:"rounds" json:"rounds"`

	// Assignment holds one 0/1 row per user over all channels.
	Assignment [][]int   `yaml:"assignment" json:"assignment"`
	Profits    []float64 `yaml:"profits" json:"profits"`
	Combine    string    `yaml:"combine" json:"combine"`
	Total      float64   `yaml:"total" json:"total"`
	Remaining  []float64 `yaml:"remaining" json:"remaining"`
}

func newSolveCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve one instance file with the constructive heuristic",
		Long: `Solve reads an instance (capacities, optional weights, per-user profit
matrices) as YAML from FILE, or from stdin when FILE is "-", and prints the
greedy assignment with its per-user and combined profit.`,
		Args: cobra.ExactArgs(1),
	}

	fs := cmd.Flags()
	fs.String("combine", "mean", "profit aggregation over users: sum, mean, min or max")
	fs.String("tie-break", knapsack.LowestIndex.String(), "equal-density order: lowest-index or reverse-row-major")
	fs.StringP("format", "o", string(experiment.FormatText), "output format: text, yaml or json")
	keys := map[string]string{
		"combine":   "combine",
		"tie-break": "tie-break",
		"format":    "format",
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		v, err := root.newViper(cmd.Flags(), keys)
		if err != nil {
			return err
		}
		var s solveSettings
		if err = v.Unmarshal(&s); err != nil {
			return fmt.Errorf("decode settings: %w", err)
		}
		format, err := experiment.ParseFormat(s.Format)
		if err != nil {
			return err
		}
		combine, err := experiment.CombineByName(s.Combine)
		if err != nil {
			return err
		}
		tie, err := knapsack.ParseTieBreak(s.TieBreak)
		if err != nil {
			return err
		}

		in, err := readInstance(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		var remaining []float64
		rounds := 0
		k, n := in.Users(), in.Channels()
		assignment, err := knapsack.ConstructWithOptions(in.Capacities, in.Weights, in.Profits,
			mat.NewDense(n, k, nil), knapsack.Options{
				TieBreak: tie,
				OnStep: func(st knapsack.Step) {
					rounds = st.Round
					remaining = st.Remaining
					root.logger.Debug("commit",
						zap.Int("round", st.Round),
						zap.Int("user", st.Knapsack),
						zap.Int("channel", st.Item),
						zap.Float64("density", st.Density),
					)
				},
			})
		if err != nil {
			return err
		}
		if remaining == nil {
			remaining = append([]float64(nil), in.Capacities...)
		}

		profits, err := knapsack.KnapsackProfits(in.Profits, assignment)
		if err != nil {
			return err
		}
		total, err := knapsack.TotalProfit(in.Profits, assignment, combine)
		if err != nil {
			return err
		}

		out := solution{
			Users:      k,
			Channels:   n,
			TieBreak:   tie.String(),
			Rounds:     rounds,
			Assignment: binaryRows(assignment),
			Profits:    profits,
			Combine:    strings.ToLower(s.Combine),
			Total:      total,
			Remaining:  remaining,
		}
		if out.Combine == "" {
			out.Combine = "mean"
		}

		return out.render(cmd.OutOrStdout(), format)
	}

	return cmd
}

// readInstance loads and validates an instance file; "-" reads stdin.
func readInstance(path string, stdin io.Reader) (*instance.Instance, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open instance: %w", err)
		}
		defer f.Close()
		r = f
	}

	spec, err := instance.LoadSpec(r)
	if err != nil {
		return nil, err
	}

	return spec.Build()
}

// binaryRows transposes the item x knapsack assignment into per-user rows.
func binaryRows(a *mat.Dense) [][]int {
	n, k := a.Dims()
	rows := make([][]int, k)
	for u := range rows {
		rows[u] = make([]int, n)
		for j := range rows[u] {
			if a.At(j, u) == 1 {
				rows[u][j] = 1
			}
		}
	}

	return rows
}

func (s solution) render(w io.Writer, f experiment.Format) error {
	switch f {
	case experiment.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}

		return enc.Close()
	case experiment.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(s)
	}

	fmt.Fprintf(w, "instance  %d users x %d channels\n", s.Users, s.Channels)
	fmt.Fprintf(w, "rounds    %d (tie-break %s)\n\n", s.Rounds, s.TieBreak)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "user\tchannels\tprofit\tremaining")
	for u, row := range s.Assignment {
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%g\n", u, channelList(row), s.Profits[u], s.Remaining[u])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\ntotal (%s)  %.4f\n", s.Combine, s.Total)

	return err
}

// channelList renders the selected channel indices of one user, "-" if none.
func channelList(row []int) string {
	var idx []string
	for j, x := range row {
		if x == 1 {
			idx = append(idx, fmt.Sprint(j))
		}
	}
	if len(idx) == 0 {
		return "-"
	}

	return strings.Join(idx, ",")
}
