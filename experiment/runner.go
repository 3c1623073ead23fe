// SPDX-License-Identifier: MIT

package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/qmkp/instance"
	"github.com/katalvlaran/qmkp/knapsack"
)

// Runner executes the configured strategies over a series of trials.
// A Runner holds no state between Run calls and may be reused.
type Runner struct {
	cfg        Config
	combine    knapsack.Combine
	strategies []Strategy
	explicit   *instance.Instance

	log     *zap.Logger
	metrics *Metrics
	tracer  trace.Tracer
	records bool
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics records every trial and strategy into m.
func WithMetrics(m *Metrics) Option { return func(r *Runner) { r.metrics = m } }

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithRecords keeps per-trial profits in Report.Records.
func WithRecords(keep bool) Option { return func(r *Runner) { r.records = keep } }

// NewRunner validates cfg and resolves its strategies and combiner.
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	combine, err := CombineByName(cfg.Combine)
	if err != nil {
		return nil, err
	}
	tie, err := knapsack.ParseTieBreak(cfg.TieBreak)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	r := &Runner{
		cfg:     cfg,
		combine: combine,
		log:     zap.NewNop(),
		tracer:  otel.Tracer(TracerName),
	}
	for _, name := range cfg.Strategies {
		s, err := NewStrategy(name, tie)
		if err != nil {
			return nil, err
		}
		r.strategies = append(r.strategies, s)
	}
	if cfg.Explicit != nil {
		if r.explicit, err = cfg.Explicit.Build(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		r.cfg.Trials = 1
	}
	for _, o := range opts {
		o(r)
	}

	return r, nil
}

// Run executes every trial in order and aggregates the results.
//
// Trial t draws its instance from instance.DeriveRNG(Seed, StreamTrial+t),
// and strategy j of trial t gets its own stream, so a report is reproducible
// for a fixed seed and independent of which other strategies are enabled.
//
// Run stops with ctx.Err() when ctx is cancelled between two strategies.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID))

	ctx, span := r.tracer.Start(ctx, "experiment.run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.Int("trials", r.cfg.Trials),
		attribute.StringSlice("strategies", r.cfg.Strategies),
	))
	defer span.End()

	var (
		trials  = r.cfg.Trials
		genTime = make([]float64, 0, trials)
		profit  = make(map[string][]float64, len(r.strategies))
		elapsed = make(map[string][]float64, len(r.strategies))
		rounds  []float64
		records []TrialRecord
	)
	log.Info("experiment started",
		zap.Int("trials", trials),
		zap.Strings("strategies", r.cfg.Strategies),
		zap.Bool("explicit", r.explicit != nil),
	)

	for t := 0; t < trials; t++ {
		tctx, tspan := r.tracer.Start(ctx, "experiment.trial", trace.WithAttributes(attribute.Int("trial", t)))
		log.Debug("working on trial", zap.Int("trial", t+1), zap.Int("of", trials))

		start := time.Now()
		in, err := r.instanceFor(t)
		genTime = append(genTime, time.Since(start).Seconds())
		if err != nil {
			markError(span, err)
			markError(tspan, err)
			tspan.End()

			return nil, fmt.Errorf("trial %d: %w", t, err)
		}

		var rec TrialRecord
		if r.records {
			rec = TrialRecord{Trial: t, Profits: make(map[string]float64, len(r.strategies))}
		}
		for j, s := range r.strategies {
			if err := ctx.Err(); err != nil {
				markError(span, err)
				tspan.End()

				return nil, err
			}
			res, err := r.runStrategy(tctx, s, in, r.strategyStream(t, j))
			if err != nil {
				markError(span, err)
				markError(tspan, err)
				tspan.End()

				return nil, fmt.Errorf("trial %d: %s: %w", t, s.Name(), err)
			}
			profit[s.Name()] = append(profit[s.Name()], res.profit)
			elapsed[s.Name()] = append(elapsed[s.Name()], res.elapsed.Seconds())
			if s.Name() == StrategyConstructive {
				rounds = append(rounds, float64(res.rounds))
			}
			if r.records {
				rec.Profits[s.Name()] = res.profit
			}
			log.Debug("strategy done",
				zap.Int("trial", t+1),
				zap.String("strategy", s.Name()),
				zap.Float64("profit", res.profit),
				zap.Duration("elapsed", res.elapsed),
			)
		}
		if r.records {
			records = append(records, rec)
		}
		r.metrics.ObserveTrial()
		tspan.End()
	}

	users, channels := r.cfg.Instance.Users, r.cfg.Instance.Channels
	if r.explicit != nil {
		users, channels = r.explicit.Users(), r.explicit.Channels()
	}

	report := &Report{
		RunID:      runID,
		Users:      users,
		Channels:   channels,
		Explicit:   r.explicit != nil,
		Trials:     trials,
		Seed:       r.cfg.Seed,
		Combine:    r.cfg.Combine,
		TieBreak:   r.cfg.TieBreak,
		Generation: Describe(genTime),
		Records:    records,
		Strategies: lo.Map(r.strategies, func(s Strategy, _ int) StrategyReport {
			sr := StrategyReport{
				Name:    s.Name(),
				Profit:  Describe(profit[s.Name()]),
				Seconds: Describe(elapsed[s.Name()]),
			}
			if db, ok := ToDecibel(sr.Profit.Mean); ok {
				sr.ProfitDB = &db
			}
			if s.Name() == StrategyConstructive {
				rs := Describe(rounds)
				sr.Rounds = &rs
			}

			return sr
		}),
	}
	for _, sr := range report.Strategies {
		fields := []zap.Field{
			zap.String("strategy", sr.Name),
			zap.Float64("profit_mean", sr.Profit.Mean),
			zap.Duration("time_mean", time.Duration(sr.Seconds.Mean*float64(time.Second))),
		}
		if sr.ProfitDB != nil {
			fields = append(fields, zap.Float64("profit_db", *sr.ProfitDB))
		}
		log.Info("strategy summary", fields...)
	}

	return report, nil
}

type strategyResult struct {
	profit  float64
	elapsed time.Duration
	rounds  int
}

func (r *Runner) runStrategy(ctx context.Context, s Strategy, in *instance.Instance, stream uint64) (strategyResult, error) {
	_, span := r.tracer.Start(ctx, "strategy."+s.Name())
	defer span.End()

	start := time.Now()
	out, err := s.Assign(in, instance.DeriveRNG(r.cfg.Seed, stream))
	took := time.Since(start)
	if err != nil {
		markError(span, err)

		return strategyResult{}, err
	}
	p, err := knapsack.TotalProfit(in.Profits, out.Assignment, r.combine)
	if err != nil {
		markError(span, err)

		return strategyResult{}, err
	}

	span.SetAttributes(
		attribute.Float64("profit", p),
		attribute.Int("rounds", out.Rounds),
	)
	r.metrics.ObserveStrategy(s.Name(), took, p, out.Rounds)

	return strategyResult{profit: p, elapsed: took, rounds: out.Rounds}, nil
}

func (r *Runner) instanceFor(t int) (*instance.Instance, error) {
	if r.explicit != nil {
		return r.explicit, nil
	}

	return instance.Generate(r.cfg.Instance, instance.DeriveRNG(r.cfg.Seed, instance.StreamTrial+uint64(t)))
}

// strategyStream keys the stream by strategy name, not position, so enabling
// another strategy does not shift the draws of the others.
func (r *Runner) strategyStream(t, j int) uint64 {
	return instance.StreamStrategy + uint64(t)<<4 + uint64(strategyIndex(r.strategies[j].Name()))
}

func strategyIndex(name string) int {
	return lo.IndexOf([]string{StrategyConstructive, StrategyRandom, StrategyRoundRobin}, name)
}

func markError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
