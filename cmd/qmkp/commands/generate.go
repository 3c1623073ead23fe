// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/qmkp/instance"
)

type generateSettings struct {
	Seed     int64           `mapstructure:"seed"`
	Instance instance.Config `mapstructure:"instance"`
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write one synthetic instance as YAML",
		Long: `Generate draws a random instance with the same generator as "qmkp run"
and prints it in the format accepted by "qmkp solve".`,
		Args: cobra.NoArgs,
	}

	fs := cmd.Flags()
	fs.Int64("seed", instance.DefaultSeed, "generator seed (0 selects the fixed default seed)")
	keys := addInstanceFlags(fs, instance.DefaultConfig())
	keys["seed"] = "seed"

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		v, err := root.newViper(cmd.Flags(), keys)
		if err != nil {
			return err
		}
		var s generateSettings
		if err = v.Unmarshal(&s); err != nil {
			return fmt.Errorf("decode settings: %w", err)
		}

		in, err := instance.Generate(s.Instance, instance.NewRNG(s.Seed))
		if err != nil {
			return err
		}
		root.logger.Info("generated instance",
			zap.Int("users", in.Users()),
			zap.Int("channels", in.Channels()),
			zap.Int64("seed", s.Seed),
		)

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err = enc.Encode(in.Spec()); err != nil {
			return err
		}

		return enc.Close()
	}

	return cmd
}
