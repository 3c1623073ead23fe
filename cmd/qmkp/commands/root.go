// SPDX-License-Identifier: MIT

// Package commands implements the qmkp command tree.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// envPrefix prefixes every environment override, e.g. QMKP_TRIALS=10.
const envPrefix = "QMKP"

// rootOptions is shared by every subcommand.
type rootOptions struct {
	configFile string
	verbosity  int
	logFile    string

	logger   *zap.Logger
	closeLog func() error
}

// Execute runs the command tree with SIGINT/SIGTERM cancellation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// NewRootCmd builds a fresh command tree. Each call owns its own flags and
// viper instances, so tests can execute it repeatedly.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "qmkp",
		Short: "Greedy QMKP-HP channel assignment",
		Long: `qmkp assigns frequency channels (items) to radio users (knapsacks) with
the constructive QMKP-HP heuristic and compares it against baselines.

Examples:
  qmkp run -u 3 -f 10 -n 100
  qmkp generate -u 2 -f 4 --seed 7 > instance.yaml
  qmkp solve instance.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeLog, err := newLogger(opts.verbosity, opts.logFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.logger, opts.closeLog = logger, closeLog

			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return opts.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "YAML config file (keys mirror the long flag names)")
	pf.CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	pf.StringVar(&opts.logFile, "log-file", "", "also append JSON logs to this file")

	root.AddCommand(
		newRunCmd(opts),
		newSolveCmd(opts),
		newGenerateCmd(opts),
	)

	return root
}

func (o *rootOptions) close() error {
	if o.logger != nil {
		_ = o.logger.Sync()
	}
	if o.closeLog != nil {
		return o.closeLog()
	}

	return nil
}

// newViper returns a viper instance reading QMKP_* variables, the optional
// config file and the given flags (flag > env > file > flag default).
func (o *rootOptions) newViper(fs *pflag.FlagSet, keys map[string]string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for key, flag := range keys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", o.configFile, err)
		}
	}

	return v, nil
}
