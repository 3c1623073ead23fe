// SPDX-License-Identifier: MIT

// Package experiment compares channel-assignment strategies over repeated
// QMKP-HP trials.
//
// A Runner generates (or loads) an instance per trial, runs every configured
// Strategy on it, scores the result with knapsack.TotalProfit and aggregates
// profits and wall times into a Report:
//
//	cfg := experiment.DefaultConfig()
//	cfg.Trials = 10
//	r, err := experiment.NewRunner(cfg, experiment.WithLogger(logger))
//	rep, err := r.Run(ctx)
//	err = rep.Render(os.Stdout, experiment.FormatText)
//
// Runs are reproducible: the instance of trial t and every strategy's random
// stream derive from Config.Seed alone.
//
// Observability is optional and nil-safe: Metrics (Prometheus collectors) and
// tracing (InitTracing, spans experiment.run > experiment.trial >
// strategy.<name>). Logging goes through zap; the default is a no-op logger.
package experiment
