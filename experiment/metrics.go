// SPDX-License-Identifier: MIT

package experiment

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors of an experiment run. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	Trials           prometheus.Counter
	StrategyDuration *prometheus.HistogramVec
	StrategyProfit   *prometheus.GaugeVec
	ConstructRounds  prometheus.Histogram
}

// NewMetrics registers the collectors against reg, defaulting to the global
// registry when nil. Collectors already registered by an earlier call are
// reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	trials, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "qmkp_trials_total",
		Help: "Number of completed experiment trials.",
	}), "qmkp_trials_total")
	if err != nil {
		return nil, err
	}

	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qmkp_strategy_duration_seconds",
		Help:    "Wall time of one strategy on one instance, labeled by strategy.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{"strategy"}), "qmkp_strategy_duration_seconds")
	if err != nil {
		return nil, err
	}

	profits, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "qmkp_strategy_profit",
		Help: "Combined profit of the most recent assignment, labeled by strategy.",
	}, []string{"strategy"}), "qmkp_strategy_profit")
	if err != nil {
		return nil, err
	}

	rounds, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "qmkp_construct_rounds",
		Help:    "Committed rounds of the constructive procedure per instance.",
		Buckets: prometheus.LinearBuckets(0, 4, 16),
	}), "qmkp_construct_rounds")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		gatherer:         gatherer,
		Trials:           trials,
		StrategyDuration: durations,
		StrategyProfit:   profits,
		ConstructRounds:  rounds,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (m *Metrics) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if m != nil && m.gatherer != nil {
		gatherer = m.gatherer
	}

	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveStrategy records one strategy execution.
func (m *Metrics) ObserveStrategy(name string, elapsed time.Duration, profit float64, rounds int) {
	if m == nil {
		return
	}
	m.StrategyDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	m.StrategyProfit.WithLabelValues(name).Set(profit)
	if name == StrategyConstructive {
		m.ConstructRounds.Observe(float64(rounds))
	}
}

// ObserveTrial counts one completed trial.
func (m *Metrics) ObserveTrial() {
	if m == nil {
		return
	}
	m.Trials.Inc()
}

// register adds c to reg, or returns the compatible collector registered
// under the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C, name string) (C, error) {
	if err := reg.Register(c); err != nil {
		var zero C
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}

			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}

		return zero, err
	}

	return c, nil
}
