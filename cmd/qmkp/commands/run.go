// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/katalvlaran/qmkp/experiment"
	"github.com/katalvlaran/qmkp/instance"
)

// runSettings is everything `qmkp run` reads from flags, env and config.
type runSettings struct {
	experiment.Config `mapstructure:",squash"`

	Format      string                   `mapstructure:"format"`
	Records     bool                     `mapstructure:"records"`
	MetricsAddr string                   `mapstructure:"metrics-addr"`
	Tracing     experiment.TracingConfig `mapstructure:"tracing"`
}

func newRunCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compare strategies over repeated random instances",
		Long: `Run generates one instance per trial, solves it with every strategy and
prints profit and timing statistics per strategy.

An "explicit" instance in the config file pins the run to a single trial.`,
		Args: cobra.NoArgs,
	}

	def := experiment.DefaultConfig()
	fs := cmd.Flags()
	fs.IntP("trials", "n", def.Trials, "number of trials")
	fs.Int64("seed", def.Seed, "base seed (0 selects the fixed default seed)")
	fs.String("combine", def.Combine, "profit aggregation over users: sum, mean, min or max")
	fs.String("tie-break", def.TieBreak, "equal-density order: lowest-index or reverse-row-major")
	fs.StringSlice("strategies", def.Strategies, "strategies to compare")
	fs.StringP("format", "o", string(experiment.FormatText), "report format: text, yaml or json")
	fs.Bool("records", false, "include per-trial profits in yaml/json reports")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address during the run (e.g. :9090)")
	fs.Bool("trace", false, "enable OpenTelemetry tracing")
	fs.String("trace-exporter", "stdout", "trace exporter: stdout (stderr stream) or otlp")
	fs.String("trace-endpoint", "", "OTLP/HTTP endpoint URL")
	fs.Float64("trace-sample-ratio", 1, "trace sampling ratio in [0, 1]")
	keys := addInstanceFlags(fs, def.Instance)
	for key, flag := range map[string]string{
		"trials":               "trials",
		"seed":                 "seed",
		"combine":              "combine",
		"tie-break":            "tie-break",
		"strategies":           "strategies",
		"format":               "format",
		"records":              "records",
		"metrics-addr":         "metrics-addr",
		"tracing.enabled":      "trace",
		"tracing.exporter":     "trace-exporter",
		"tracing.endpoint":     "trace-endpoint",
		"tracing.sample-ratio": "trace-sample-ratio",
	} {
		keys[key] = flag
	}

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		v, err := root.newViper(cmd.Flags(), keys)
		if err != nil {
			return err
		}
		v.SetDefault("tracing.service-name", experiment.DefaultTracingConfig().ServiceName)

		var s runSettings
		if err = v.Unmarshal(&s); err != nil {
			return fmt.Errorf("decode settings: %w", err)
		}
		format, err := experiment.ParseFormat(s.Format)
		if err != nil {
			return err
		}
		log := root.logger
		ctx := cmd.Context()

		s.Tracing.Writer = cmd.ErrOrStderr()
		shutdown, err := experiment.InitTracing(ctx, s.Tracing, log)
		if err != nil {
			return err
		}
		defer experiment.ShutdownWithTimeout(context.Background(), shutdown, log)

		var metrics *experiment.Metrics
		if s.MetricsAddr != "" {
			stop, m, err := serveMetrics(s.MetricsAddr, log)
			if err != nil {
				return err
			}
			defer stop()
			metrics = m
		}

		runner, err := experiment.NewRunner(s.Config,
			experiment.WithLogger(log),
			experiment.WithMetrics(metrics),
			experiment.WithRecords(s.Records),
		)
		if err != nil {
			return err
		}
		report, err := runner.Run(ctx)
		if err != nil {
			return err
		}

		return report.Render(cmd.OutOrStdout(), format)
	}

	return cmd
}

// addInstanceFlags registers the generator flags and returns their viper keys.
func addInstanceFlags(fs *pflag.FlagSet, def instance.Config) map[string]string {
	fs.IntP("users", "u", def.Users, "number of users (knapsacks)")
	fs.IntP("channels", "f", def.Channels, "number of frequency channels (items)")
	fs.Float64P("capacity", "c", def.Capacity, "channel budget per user")
	fs.Float64("weight", def.Weight, "weight of every channel")
	fs.Float64("standalone-min", def.StandaloneMin, "lower bound of standalone channel profit")
	fs.Float64("standalone-max", def.StandaloneMax, "upper bound of standalone channel profit")
	fs.Float64("coupling-min", def.CouplingMin, "lower bound of pairwise coupling (negative = interference)")
	fs.Float64("coupling-max", def.CouplingMax, "upper bound of pairwise coupling")

	return map[string]string{
		"instance.users":          "users",
		"instance.channels":       "channels",
		"instance.capacity":       "capacity",
		"instance.weight":         "weight",
		"instance.standalone-min": "standalone-min",
		"instance.standalone-max": "standalone-max",
		"instance.coupling-min":   "coupling-min",
		"instance.coupling-max":   "coupling-max",
	}
}

// serveMetrics exposes a fresh registry on addr until the returned stop is
// called.
func serveMetrics(addr string, log *zap.Logger) (func(), *experiment.Metrics, error) {
	reg := prometheus.NewRegistry()
	m, err := experiment.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, m, nil
}
